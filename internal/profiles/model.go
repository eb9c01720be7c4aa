// Package profiles defines the candidate profile submitted for matching and
// the upload flow that produces one from a resume file.
package profiles

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Project is a student project listed on a profile.
type Project struct {
	Title       string `json:"title" yaml:"title" validate:"required,max=200"`
	Description string `json:"description" yaml:"description" validate:"max=2000"`
}

// Internship is a past internship listed on a profile.
type Internship struct {
	Company     string `json:"company" yaml:"company" validate:"required,max=200"`
	Role        string `json:"role" yaml:"role" validate:"max=200"`
	Duration    string `json:"duration" yaml:"duration" validate:"max=100"`
	Description string `json:"description" yaml:"description" validate:"max=2000"`
}

// CandidateProfile is one candidate submission. Only Skills feeds matching;
// the other fields are carried for display.
type CandidateProfile struct {
	Name           string       `json:"name" yaml:"name" validate:"max=200"`
	TenthMarks     string       `json:"tenthMarks" yaml:"tenthMarks" validate:"omitempty,score=100"`
	TwelfthMarks   string       `json:"twelfthMarks" yaml:"twelfthMarks" validate:"omitempty,score=100"`
	CGPA           string       `json:"cgpa" yaml:"cgpa" validate:"omitempty,score=10"`
	Branch         string       `json:"branch" yaml:"branch" validate:"max=100"`
	Skills         []string     `json:"skills" yaml:"skills" validate:"max=200,dive,required,max=100"`
	Projects       []Project    `json:"projects" yaml:"projects" validate:"max=50,dive"`
	Certifications []string     `json:"certifications" yaml:"certifications" validate:"max=50,dive,max=200"`
	Achievements   []string     `json:"achievements" yaml:"achievements" validate:"max=50,dive,max=200"`
	Internships    []Internship `json:"internships" yaml:"internships" validate:"max=50,dive"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func profileValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// score=N accepts a decimal number in [0, N].
		_ = validate.RegisterValidation("score", func(fl validator.FieldLevel) bool {
			limit, err := strconv.ParseFloat(fl.Param(), 64)
			if err != nil {
				return false
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(fl.Field().String()), 64)
			if err != nil {
				return false
			}
			return v >= 0 && v <= limit
		})
	})
	return validate
}

// Validate checks field formats and size limits.
func (p *CandidateProfile) Validate() error {
	return profileValidator().Struct(p)
}

// FieldErrors flattens a Validate error into field -> rule pairs for API
// responses. Non-validation errors yield nil.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule = fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())
		}
		out[fe.Namespace()] = rule
	}
	return out
}

// Placeholder is the fixed profile returned by the upload flow. Uploaded
// documents are checked for readability but their content is not parsed.
func Placeholder() CandidateProfile {
	return CandidateProfile{
		Name:         "John Doe",
		TenthMarks:   "95",
		TwelfthMarks: "92",
		CGPA:         "8.5",
		Branch:       "CS",
		Skills:       []string{"JavaScript", "React", "Node.js", "Python"},
		Projects: []Project{{
			Title:       "E-commerce Website",
			Description: "Built a full-stack e-commerce platform using MERN stack",
		}},
		Certifications: []string{"AWS Certified Developer"},
		Achievements:   []string{"First Prize in College Hackathon"},
		Internships: []Internship{{
			Company:     "Tech Solutions",
			Role:        "Software Developer Intern",
			Duration:    "3 months",
			Description: "Developed features for the company's main product",
		}},
	}
}
