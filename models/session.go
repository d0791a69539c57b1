// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "sort"

// Category is the free-form topic of a [Session]. The set is open: values
// outside the known constants are kept verbatim.
type Category string

// Known categories served by the backend.
const (
	CategoryCareer       Category = "Career"
	CategoryEmotions     Category = "Emotions"
	CategoryProductivity Category = "Productivity"
	CategoryOther        Category = "Other"
)

// KnownCategories lists the categories offered when a session is created
// locally.
var KnownCategories = []Category{
	CategoryCareer,
	CategoryEmotions,
	CategoryProductivity,
	CategoryOther,
}

// IsKnown reports whether c is one of [KnownCategories].
func (c Category) IsKnown() bool {
	for _, known := range KnownCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Session is one conversation thread. ID is the only identity used when local
// and remote copies are merged.
type Session struct {
	ID       string    `json:"id"`
	Date     string    `json:"date"`
	Title    string    `json:"title"`
	Category Category  `json:"category"`
	Summary  string    `json:"summary"`
	Messages []Message `json:"messages"`
}

// Clone returns a deep copy of s so that callers can hand it out without
// sharing the message slice.
func (s Session) Clone() Session {
	c := s
	if s.Messages != nil {
		c.Messages = make([]Message, len(s.Messages))
		copy(c.Messages, s.Messages)
	}
	return c
}

// CloneSessions deep-copies every session in list.
func CloneSessions(list []Session) []Session {
	if list == nil {
		return nil
	}
	out := make([]Session, len(list))
	for i := range list {
		out[i] = list[i].Clone()
	}
	return out
}

// SortSessions orders sessions newest first by the instant of their date,
// then by ID.
func SortSessions(list []Session) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Date == list[j].Date {
			return list[i].ID < list[j].ID
		}
		return TimestampBefore(list[j].Date, list[i].Date)
	})
}
