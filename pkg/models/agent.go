package models

import (
	"fmt"

	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"github.com/AI-call-center/modern-dashboard/pkg/draft"
)

// Tone is the speaking style of an agent.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneTalkative    Tone = "talkative"
)

// AgentConfig is the submitted draft of the "agent" flow.
type AgentConfig struct {
	BasicInfo      BasicInfo      `mapstructure:"basicInfo" json:"basicInfo" yaml:"basicInfo"`
	Behaviour      Behaviour      `mapstructure:"behaviour" json:"behaviour" yaml:"behaviour"`
	Knowledge      Knowledge      `mapstructure:"knowledge" json:"knowledge" yaml:"knowledge"`
	DataCollection DataCollection `mapstructure:"dataCollection" json:"dataCollection" yaml:"dataCollection"`
	Actions        Actions        `mapstructure:"actions" json:"actions" yaml:"actions"`
}

type BasicInfo struct {
	Name  string `mapstructure:"name" json:"name" yaml:"name"`
	Voice string `mapstructure:"voice" json:"voice" yaml:"voice"`
	Tone  Tone   `mapstructure:"tone" json:"tone" yaml:"tone"`
}

type Behaviour struct {
	Greeting  string     `mapstructure:"greeting" json:"greeting" yaml:"greeting"`
	Prompt    string     `mapstructure:"prompt" json:"prompt" yaml:"prompt"`
	Variables []Variable `mapstructure:"variables" json:"variables" yaml:"variables"`
}

// Variable is a key/value pair injected into the agent prompt.
type Variable struct {
	Key   string `mapstructure:"key" json:"key" yaml:"key"`
	Value string `mapstructure:"value" json:"value" yaml:"value"`
}

type Knowledge struct {
	LLM             string   `mapstructure:"llm" json:"llm" yaml:"llm"`
	CustomKnowledge string   `mapstructure:"customKnowledge" json:"customKnowledge" yaml:"customKnowledge"`
	Files           []Source `mapstructure:"files" json:"files" yaml:"files"`
}

// Source is an uploaded file name or a URL the agent may consult.
type Source struct {
	Type  string `mapstructure:"type" json:"type" yaml:"type"` // "file" or "url"
	Value string `mapstructure:"value" json:"value" yaml:"value"`
}

type DataCollection struct {
	Variables []CollectedVariable `mapstructure:"variables" json:"variables" yaml:"variables"`
}

// CollectedVariable is a piece of information the agent asks the caller for.
type CollectedVariable struct {
	Name        string `mapstructure:"name" json:"name" yaml:"name"`
	Description string `mapstructure:"description" json:"description" yaml:"description"`
}

type Actions struct {
	SelectedActions []string `mapstructure:"selectedActions" json:"selectedActions" yaml:"selectedActions"`
}

// DecodeAgent builds an AgentConfig from an "agent" draft.
func DecodeAgent(d domain.Draft) (*AgentConfig, error) {
	var cfg AgentConfig
	if err := draft.DecodeDraft(d, &cfg); err != nil {
		return nil, fmt.Errorf("agent: %w", err)
	}
	return &cfg, nil
}
