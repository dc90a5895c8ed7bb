package models

import "time"

// Student is one registration record. The same struct is persisted by both
// storage strategies: json tags drive the file store and the HTTP responses,
// bson tags drive the MongoDB store.
type Student struct {
	ID               string       `json:"id" bson:"_id"`
	Name             string       `json:"name" bson:"name"`
	Email            string       `json:"email" bson:"email"`
	Phone            string       `json:"phone" bson:"phone"`
	Department       string       `json:"department" bson:"department"`
	Year             string       `json:"year" bson:"year"`
	RollNumber       string       `json:"rollNumber" bson:"rollNumber"`
	Accommodation    string       `json:"accommodation,omitempty" bson:"accommodation,omitempty"`
	TeamName         string       `json:"teamName" bson:"teamName"`
	TeamSize         int          `json:"teamSize" bson:"teamSize"`
	TeamMembers      []TeamMember `json:"teamMembers" bson:"teamMembers"`
	Domain           string       `json:"domain,omitempty" bson:"domain,omitempty"`
	ProblemStatement string       `json:"problemStatement,omitempty" bson:"problemStatement,omitempty"`
	Event            string       `json:"event" bson:"event"`
	AbstractFilePath string       `json:"abstractFile,omitempty" bson:"abstractFile,omitempty"`
	RegisteredAt     time.Time    `json:"registeredAt" bson:"registeredAt"`
}

type TeamMember struct {
	Name       string `json:"name" bson:"name"`
	Email      string `json:"email" bson:"email"`
	Phone      string `json:"phone" bson:"phone"`
	RollNumber string `json:"rollNumber" bson:"rollNumber"`
	Department string `json:"department" bson:"department"`
}

// AbstractFile is a base64-encoded attachment as submitted by the front end.
// Data may carry a "data:<mime>;base64," prefix.
type AbstractFile struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data string `json:"data"`
}

// RegisterRequest is the raw POST /api/register payload before validation
// and normalization.
type RegisterRequest struct {
	Name             string        `json:"name"`
	Email            string        `json:"email"`
	Phone            string        `json:"phone"`
	Department       string        `json:"department"`
	Year             string        `json:"year"`
	RollNumber       string        `json:"rollNumber"`
	Accommodation    string        `json:"accommodation"`
	TeamName         string        `json:"teamName"`
	TeamSize         int           `json:"teamSize"`
	TeamMembers      []TeamMember  `json:"teamMembers"`
	Domain           string        `json:"domain"`
	ProblemStatement string        `json:"problemStatement"`
	Event            string        `json:"event"`
	AbstractFile     *AbstractFile `json:"abstractFile"`
}

type Stats struct {
	Total        int            `json:"total"`
	ByDepartment map[string]int `json:"byDepartment"`
	ByYear       map[string]int `json:"byYear"`
}
