package resume

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CustomSectionType discriminates how a custom section's content is shaped.
type CustomSectionType string

const (
	CustomTypeText         CustomSectionType = "text"
	CustomTypeList         CustomSectionType = "list"
	CustomTypeAchievements CustomSectionType = "achievements"
)

// CustomSection 表示用户自定义分区。
// content 的形状由 type 决定：text 为整段文本，list/achievements 为条目数组。
type CustomSection struct {
	ID    string            `json:"id"`
	Title string            `json:"title"`
	Type  CustomSectionType `json:"type"`
	Text  string            `json:"-"`
	Items []CustomItem      `json:"-"`
}

// CustomItemKind discriminates the shape of one list entry.
type CustomItemKind string

const (
	CustomItemPlain       CustomItemKind = "plain"
	CustomItemSkillGroup  CustomItemKind = "skill_group"
	CustomItemProject     CustomItemKind = "project"
	CustomItemCredential  CustomItemKind = "credential"
	CustomItemAchievement CustomItemKind = "achievement"
)

// CustomItem is the sum type for heterogeneous list content. Exactly the
// fields of the active variant are populated; Kind says which one that is.
type CustomItem struct {
	Kind CustomItemKind

	// plain
	Text string

	// skill_group
	Category string
	Skills   []string

	// project
	Name         string
	Description  string
	Technologies []string

	// credential / achievement
	Title  string
	Issuer string
}

type customSectionJSON struct {
	ID      string            `json:"id"`
	Title   string            `json:"title"`
	Type    CustomSectionType `json:"type"`
	Content json.RawMessage   `json:"content"`
}

// UnmarshalJSON decodes the shape-dependent content field by explicit
// discrimination on Type. Unknown types degrade to an empty text section
// rather than erroring (fail-soft, the estimator still charges its slot).
func (s *CustomSection) UnmarshalJSON(data []byte) error {
	var raw customSectionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.ID = raw.ID
	s.Title = raw.Title
	s.Type = raw.Type
	s.Text = ""
	s.Items = nil

	if len(raw.Content) == 0 || string(raw.Content) == "null" {
		return nil
	}

	switch raw.Type {
	case CustomTypeText:
		if err := json.Unmarshal(raw.Content, &s.Text); err != nil {
			return fmt.Errorf("custom section %q: decode text content: %w", raw.ID, err)
		}
	case CustomTypeList, CustomTypeAchievements:
		var entries []json.RawMessage
		if err := json.Unmarshal(raw.Content, &entries); err != nil {
			return fmt.Errorf("custom section %q: decode list content: %w", raw.ID, err)
		}
		s.Items = make([]CustomItem, 0, len(entries))
		for i, entry := range entries {
			item, err := decodeCustomItem(entry)
			if err != nil {
				return fmt.Errorf("custom section %q item %d: %w", raw.ID, i, err)
			}
			s.Items = append(s.Items, item)
		}
	default:
		// 未知类型：内容不渲染，但分区仍占据最小高度槽位。
	}

	return nil
}

// MarshalJSON writes back the same wire shape the editor produces.
func (s CustomSection) MarshalJSON() ([]byte, error) {
	out := customSectionJSON{ID: s.ID, Title: s.Title, Type: s.Type}

	switch s.Type {
	case CustomTypeText:
		content, err := json.Marshal(s.Text)
		if err != nil {
			return nil, err
		}
		out.Content = content
	case CustomTypeList, CustomTypeAchievements:
		entries := make([]any, 0, len(s.Items))
		for _, item := range s.Items {
			entries = append(entries, encodeCustomItem(item))
		}
		content, err := json.Marshal(entries)
		if err != nil {
			return nil, err
		}
		out.Content = content
	}

	return json.Marshal(out)
}

type customItemJSON struct {
	Category     *string  `json:"category,omitempty"`
	Skills       []string `json:"skills,omitempty"`
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Title        *string  `json:"title,omitempty"`
	Issuer       *string  `json:"issuer,omitempty"`
}

// decodeCustomItem maps one raw list entry to its variant. A JSON string
// is a plain item; objects are discriminated by which identifying fields
// are present, in a fixed precedence order.
func decodeCustomItem(raw json.RawMessage) (CustomItem, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, `"`) {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return CustomItem{}, err
		}
		return CustomItem{Kind: CustomItemPlain, Text: text}, nil
	}

	var obj customItemJSON
	if err := json.Unmarshal(raw, &obj); err != nil {
		return CustomItem{}, err
	}

	switch {
	case obj.Category != nil:
		return CustomItem{
			Kind:     CustomItemSkillGroup,
			Category: *obj.Category,
			Skills:   obj.Skills,
		}, nil
	case obj.Name != nil:
		item := CustomItem{
			Kind:         CustomItemProject,
			Name:         *obj.Name,
			Technologies: obj.Technologies,
		}
		if obj.Description != nil {
			item.Description = *obj.Description
		}
		return item, nil
	case obj.Title != nil && obj.Issuer != nil:
		item := CustomItem{
			Kind:   CustomItemCredential,
			Title:  *obj.Title,
			Issuer: *obj.Issuer,
		}
		if obj.Description != nil {
			item.Description = *obj.Description
		}
		return item, nil
	case obj.Title != nil:
		item := CustomItem{
			Kind:  CustomItemAchievement,
			Title: *obj.Title,
		}
		if obj.Description != nil {
			item.Description = *obj.Description
		}
		return item, nil
	default:
		return CustomItem{}, fmt.Errorf("unrecognized custom item shape: %s", trimmed)
	}
}

func encodeCustomItem(item CustomItem) any {
	switch item.Kind {
	case CustomItemPlain:
		return item.Text
	case CustomItemSkillGroup:
		return map[string]any{"category": item.Category, "skills": item.Skills}
	case CustomItemProject:
		out := map[string]any{"name": item.Name, "description": item.Description}
		if len(item.Technologies) > 0 {
			out["technologies"] = item.Technologies
		}
		return out
	case CustomItemCredential:
		return map[string]any{"title": item.Title, "issuer": item.Issuer, "description": item.Description}
	case CustomItemAchievement:
		out := map[string]any{"title": item.Title}
		if item.Description != "" {
			out["description"] = item.Description
		}
		return out
	default:
		return item.Text
	}
}
