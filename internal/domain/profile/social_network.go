package profile

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

type SocialNetworkType string

const (
	SocialSlack     SocialNetworkType = "Slack"
	SocialLinkedIn  SocialNetworkType = "LinkedIn"
	SocialGitHub    SocialNetworkType = "GitHub"
	SocialPhone     SocialNetworkType = "Phone"
	SocialInstagram SocialNetworkType = "Instagram"
	SocialTelegram  SocialNetworkType = "Telegram"
	SocialDiscord   SocialNetworkType = "Discord"
	SocialOther     SocialNetworkType = "Other"
)

var SocialNetworkTypes = []SocialNetworkType{
	SocialSlack, SocialLinkedIn, SocialGitHub, SocialPhone,
	SocialInstagram, SocialTelegram, SocialDiscord, SocialOther,
}

const (
	maxHandleLength = 40
	maxLinkLength   = 1024
)

var ErrHandleXorLink = errors.New("exactly one of handle or link must be set")

func ParseSocialNetworkType(s string) (SocialNetworkType, error) {
	for _, t := range SocialNetworkTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown social network type %q", s)
}

// SocialNetwork is keyed by (ProfileID, Type).
type SocialNetwork struct {
	ProfileID int64             `json:"profile_id"`
	Type      SocialNetworkType `json:"type"`
	Handle    *string           `json:"handle"`
	Link      *string           `json:"link"`
}

func (s *SocialNetwork) Validate() error {
	if _, err := ParseSocialNetworkType(string(s.Type)); err != nil {
		return err
	}
	if (s.Handle == nil) == (s.Link == nil) {
		return ErrHandleXorLink
	}
	if s.Handle != nil && utf8.RuneCountInString(*s.Handle) > maxHandleLength {
		return fmt.Errorf("social network handle must be at most %d characters", maxHandleLength)
	}
	if s.Link != nil && utf8.RuneCountInString(*s.Link) > maxLinkLength {
		return fmt.Errorf("social network link must be at most %d characters", maxLinkLength)
	}
	return nil
}
