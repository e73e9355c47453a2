/*
Package templates provides the catalog of ready-made texts offered while
filling a wizard: agent greetings and prompts grouped by call direction and
use case, and campaign first messages grouped by tags.

Picking a template produces an ordinary field change:

	tpl, _ := catalog.Find("cs-1")
	ctrl.Update("behaviour", tpl.Partial("greeting"))
*/
package templates
