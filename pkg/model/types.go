package model

import (
	"fmt"
	"strings"
	"time"
)

// Card represents one testimonial or marketing card shown in the carousel
type Card struct {
	ID         string    `json:"id" yaml:"id"`
	Author     string    `json:"author" yaml:"author"`
	Role       string    `json:"role,omitempty" yaml:"role,omitempty"`
	Company    string    `json:"company,omitempty" yaml:"company,omitempty"`
	Quote      string    `json:"quote" yaml:"quote"`
	Rating     int       `json:"rating,omitempty" yaml:"rating,omitempty"`
	Avatar     string    `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	Tags       []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	SourceDeck string    `json:"source_deck,omitempty" yaml:"-"`
}

// Clone creates a deep copy of the card
func (c Card) Clone() Card {
	clone := c
	if c.Tags != nil {
		clone.Tags = make([]string, len(c.Tags))
		copy(clone.Tags, c.Tags)
	}
	return clone
}

// Validate checks if the card data is logically valid
func (c *Card) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("card ID cannot be empty")
	}
	if strings.TrimSpace(c.Quote) == "" {
		return fmt.Errorf("card %s has an empty quote", c.ID)
	}
	if c.Rating < 0 || c.Rating > 5 {
		return fmt.Errorf("card %s rating %d out of range 0-5", c.ID, c.Rating)
	}
	return nil
}

// DisplayName renders the attribution line: "Author, Role at Company" with
// missing pieces dropped gracefully.
func (c *Card) DisplayName() string {
	name := c.Author
	if name == "" {
		name = "Anonymous"
	}
	switch {
	case c.Role != "" && c.Company != "":
		return fmt.Sprintf("%s, %s at %s", name, c.Role, c.Company)
	case c.Role != "":
		return fmt.Sprintf("%s, %s", name, c.Role)
	case c.Company != "":
		return fmt.Sprintf("%s, %s", name, c.Company)
	}
	return name
}

// Initials returns up to two letters used for the avatar badge when no
// avatar text is set.
func (c *Card) Initials() string {
	if c.Avatar != "" {
		return c.Avatar
	}
	fields := strings.Fields(c.Author)
	if len(fields) == 0 {
		return "?"
	}
	first := []rune(fields[0])
	if len(fields) == 1 {
		return strings.ToUpper(string(first[:1]))
	}
	last := []rune(fields[len(fields)-1])
	return strings.ToUpper(string(first[:1]) + string(last[:1]))
}

// Stars renders the rating as filled/empty star runes, empty string when
// the card carries no rating.
func (c *Card) Stars() string {
	if c.Rating <= 0 {
		return ""
	}
	return strings.Repeat("★", c.Rating) + strings.Repeat("☆", 5-c.Rating)
}

// HasTag reports whether the card carries the given tag (case-insensitive)
func (c *Card) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
