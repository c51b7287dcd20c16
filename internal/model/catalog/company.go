package catalog

// Profile is the signed-in company's account page.
type Profile struct {
	Company       Company         `json:"company" yaml:"company"`
	TeamMembers   []TeamMember    `json:"teamMembers" yaml:"teamMembers"`
	Notifications map[string]bool `json:"notifications" yaml:"notifications"`
}

type Company struct {
	Name           string                `json:"name" yaml:"name"`
	Industry       string                `json:"industry" yaml:"industry"`
	Size           string                `json:"size" yaml:"size"`
	Location       string                `json:"location" yaml:"location"`
	Website        string                `json:"website" yaml:"website"`
	Phone          string                `json:"phone" yaml:"phone"`
	Email          string                `json:"email" yaml:"email"`
	Sustainability CompanySustainability `json:"sustainability" yaml:"sustainability"`
}

type CompanySustainability struct {
	Score         int      `json:"score" yaml:"score"`
	Certification string   `json:"certification" yaml:"certification"`
	Goals         []string `json:"goals" yaml:"goals"`
}

// TeamMember status is "active" or "pending".
type TeamMember struct {
	Name   string `json:"name" yaml:"name"`
	Role   string `json:"role" yaml:"role"`
	Email  string `json:"email" yaml:"email"`
	Status string `json:"status" yaml:"status"`
}

// Overview is the landing page content.
type Overview struct {
	Features []Feature      `json:"features" yaml:"features"`
	Stats    []HeadlineStat `json:"stats" yaml:"stats"`
}

type Feature struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// HeadlineStat renders as Value followed by Suffix, e.g. 450+.
type HeadlineStat struct {
	Value  float64 `json:"value" yaml:"value"`
	Label  string  `json:"label" yaml:"label"`
	Suffix string  `json:"suffix" yaml:"suffix"`
}

func (p Profile) clone() Profile {
	p.Company.Sustainability.Goals = append([]string(nil), p.Company.Sustainability.Goals...)
	p.TeamMembers = append([]TeamMember(nil), p.TeamMembers...)
	notifications := make(map[string]bool, len(p.Notifications))
	for k, v := range p.Notifications {
		notifications[k] = v
	}
	p.Notifications = notifications
	return p
}

func (o Overview) clone() Overview {
	o.Features = append([]Feature(nil), o.Features...)
	o.Stats = append([]HeadlineStat(nil), o.Stats...)
	return o
}
