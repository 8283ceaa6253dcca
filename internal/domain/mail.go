package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type SchedulePublishedMailData struct {
	PersonName   string   `json:"personName"`
	MinistryName string   `json:"ministryName"`
	Month        string   `json:"month"`
	Services     []string `json:"services"` // "2025-12-21 (Noite)"
}

type AssignmentReplacedMailData struct {
	PersonName   string `json:"personName"`
	MinistryName string `json:"ministryName"`
	ServiceDate  string `json:"serviceDate"`
	ServiceLabel string `json:"serviceLabel"`
}
