package domain

import "time"

// SectionSelection toggles the sections of a farmer statement.
type SectionSelection struct {
	Wallet       bool `json:"wallet"`
	Loans        bool `json:"loans"`
	Transactions bool `json:"transactions"`
	Purchases    bool `json:"purchases"`
	Sessions     bool `json:"sessions"`
	Activity     bool `json:"activity"`
}

// AllSections enables every statement section.
func AllSections() SectionSelection {
	return SectionSelection{Wallet: true, Loans: true, Transactions: true, Purchases: true, Sessions: true, Activity: true}
}

// Any reports whether at least one section is enabled.
func (s SectionSelection) Any() bool {
	return s.Wallet || s.Loans || s.Transactions || s.Purchases || s.Sessions || s.Activity
}

// Section is one titled table of a statement. Every cell is already a
// display string; money cells carry formatted major-unit amounts.
type Section struct {
	Title   string              `json:"sectionTitle"`
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
}

// Statement is the flat document handed to a report renderer.
type Statement struct {
	Title       string    `json:"title"`
	Subject     string    `json:"subject"`
	SubjectID   string    `json:"subjectId"`
	GeneratedAt time.Time `json:"generatedAt"`
	Sections    []Section `json:"sections"`
}
