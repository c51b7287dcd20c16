package catalog

// Training backs the learning hub.
type Training struct {
	Courses []Course `json:"courses" yaml:"courses"`
	Badges  []Badge  `json:"badges" yaml:"badges"`
}

// Course is a sustainability course with the learner's progress.
type Course struct {
	ID          int     `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Description string  `json:"description" yaml:"description"`
	Duration    string  `json:"duration" yaml:"duration"`
	Level       string  `json:"level" yaml:"level"`
	Rating      float64 `json:"rating" yaml:"rating"`
	Enrolled    int     `json:"enrolled" yaml:"enrolled"`
	Progress    float64 `json:"progress" yaml:"progress"`
	Category    string  `json:"category" yaml:"category"`
	Status      string  `json:"status" yaml:"-"`
}

// LearnerStatus is "not started", "in progress" or "completed".
func (c Course) LearnerStatus() string {
	switch {
	case c.Progress <= 0:
		return "not started"
	case c.Progress >= 100:
		return "completed"
	default:
		return "in progress"
	}
}

type Badge struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

func (t Training) clone() Training {
	t.Courses = append([]Course(nil), t.Courses...)
	t.Badges = append([]Badge(nil), t.Badges...)
	return t
}
