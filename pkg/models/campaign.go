package models

import (
	"fmt"

	"github.com/AI-call-center/modern-dashboard/pkg/domain"
	"github.com/AI-call-center/modern-dashboard/pkg/draft"
)

// CampaignType is the call direction of a campaign.
type CampaignType string

const (
	CampaignOutbound CampaignType = "Outbound"
	CampaignInbound  CampaignType = "Inbound"
	CampaignMixed    CampaignType = "Mixed"
)

// CampaignConfig is the submitted draft of the "campaign" flow.
type CampaignConfig struct {
	Details  CampaignDetails `mapstructure:"details" json:"details" yaml:"details"`
	Schedule Schedule        `mapstructure:"schedule" json:"schedule" yaml:"schedule"`
}

type CampaignDetails struct {
	Name         string       `mapstructure:"name" json:"name" yaml:"name"`
	Type         CampaignType `mapstructure:"type" json:"type" yaml:"type"`
	FirstMessage string       `mapstructure:"firstMessage" json:"firstMessage" yaml:"firstMessage"`
}

type Schedule struct {
	Timezone   string    `mapstructure:"timezone" json:"timezone" yaml:"timezone"`
	TimeRange  TimeRange `mapstructure:"timeRange" json:"timeRange" yaml:"timeRange"`
	ActiveDays []string  `mapstructure:"activeDays" json:"activeDays" yaml:"activeDays"`
}

// TimeRange holds "HH:MM" calling hours.
type TimeRange struct {
	Start string `mapstructure:"start" json:"start" yaml:"start"`
	End   string `mapstructure:"end" json:"end" yaml:"end"`
}

// DecodeCampaign builds a CampaignConfig from a "campaign" draft.
func DecodeCampaign(d domain.Draft) (*CampaignConfig, error) {
	var cfg CampaignConfig
	if err := draft.DecodeDraft(d, &cfg); err != nil {
		return nil, fmt.Errorf("campaign: %w", err)
	}
	return &cfg, nil
}

// Decode returns the typed view of a draft for the builtin flows, and the
// draft itself for any other flow.
func Decode(flowID string, d domain.Draft) (any, error) {
	switch flowID {
	case "agent":
		return DecodeAgent(d)
	case "campaign":
		return DecodeCampaign(d)
	}
	return d, nil
}
