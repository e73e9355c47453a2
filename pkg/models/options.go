package models

// Voices available for a new agent.
var Voices = []string{"Christopher", "Emma", "Michael", "Sarah", "David", "Lisa"}

// ToneOption describes a selectable tone.
type ToneOption struct {
	ID          Tone
	Title       string
	Description string
}

var Tones = []ToneOption{
	{ID: ToneProfessional, Title: "Professional", Description: "Formal and business-oriented communication style"},
	{ID: ToneCasual, Title: "Casual", Description: "Friendly and conversational tone"},
	{ID: ToneTalkative, Title: "Talkative", Description: "Engaging and chatty personality"},
}

// LLMs the agent can run on.
var LLMs = []string{"GPT 4.0", "GPT 3.5 Turbo", "Claude 2.0", "PaLM 2.0"}

// ActionOption describes a tool the agent may be allowed to use.
type ActionOption struct {
	ID          string
	Name        string
	Description string
}

var AgentActions = []ActionOption{
	{ID: "end-call", Name: "End Call", Description: "Ends the call."},
	{ID: "appointment", Name: "Appointment Scheduling", Description: "Real-time booking scheduling."},
	{ID: "transfer", Name: "Call Transfer", Description: "Transfers the call to a real assistant."},
}

var CampaignTypes = []CampaignType{CampaignOutbound, CampaignInbound, CampaignMixed}

// Weekdays are the values accepted in Schedule.ActiveDays.
var Weekdays = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// ActionName returns the display name of an action ID, or the ID itself.
func ActionName(id string) string {
	for _, a := range AgentActions {
		if a.ID == id {
			return a.Name
		}
	}
	return id
}
