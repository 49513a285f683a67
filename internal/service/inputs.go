package service

import "portfolio/internal/model"

// LoginRequest is the body of a login call.
type LoginRequest struct {
	Email    string `json:"email" label:"Email" validate:"required,email"`
	Password string `json:"password" label:"Password" validate:"required"`
}

// ChangePasswordRequest is the body of a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" label:"Current password" validate:"required"`
	NewPassword     string `json:"newPassword" label:"New password" validate:"required,min=8,max=72"`
}

// BlogInput is the writable shape of a blog post.
type BlogInput struct {
	Title     string   `json:"title" label:"Title" validate:"required,notblank,max=200"`
	Slug      string   `json:"slug" label:"Slug" validate:"required,notblank,max=200"`
	Content   string   `json:"content" label:"Content" validate:"required"`
	Excerpt   string   `json:"excerpt" label:"Excerpt" validate:"required,max=500"`
	Tags      []string `json:"tags" label:"Tags" validate:"omitempty,max=20,dive,required,max=50"`
	Published bool     `json:"published" label:"Published"`
}

// ProjectInput is the writable shape of a project.
type ProjectInput struct {
	Title        string   `json:"title" label:"Title" validate:"required,notblank,max=200"`
	Slug         string   `json:"slug" label:"Slug" validate:"required,notblank,max=200"`
	Description  string   `json:"description" label:"Description" validate:"required"`
	Thumbnail    string   `json:"thumbnail" label:"Thumbnail" validate:"required,max=500"`
	LiveLink     string   `json:"liveLink" label:"Live link" validate:"required,url,max=500"`
	GithubLink   string   `json:"githubLink" label:"GitHub link" validate:"omitempty,url,max=500"`
	Features     []string `json:"features" label:"Features" validate:"required,min=1,dive,required,max=200"`
	Technologies []string `json:"technologies" label:"Technologies" validate:"required,min=1,dive,required,max=200"`
	Published    bool     `json:"published" label:"Published"`
}

// WorkExperienceInput is one position on the about profile. Every field is
// free text and may be left empty.
type WorkExperienceInput struct {
	Company     string `json:"company" label:"Company" validate:"max=200"`
	Position    string `json:"position" label:"Position" validate:"max=200"`
	Duration    string `json:"duration" label:"Duration" validate:"max=100"`
	Description string `json:"description" label:"Description" validate:"max=1000"`
}

// AboutInput is the writable shape of the about profile.
type AboutInput struct {
	Bio            string                `json:"bio" label:"Bio" validate:"required"`
	WorkExperience []WorkExperienceInput `json:"workExperience" label:"Work experience" validate:"omitempty,dive"`
	Skills         []string              `json:"skills" label:"Skills" validate:"omitempty,dive,required,max=100"`
}

func (in *AboutInput) workExperience() []model.WorkExperience {
	out := make([]model.WorkExperience, 0, len(in.WorkExperience))
	for _, w := range in.WorkExperience {
		out = append(out, model.WorkExperience{
			Company:     w.Company,
			Position:    w.Position,
			Duration:    w.Duration,
			Description: w.Description,
		})
	}
	return out
}

// ContactInput is a contact form submission.
type ContactInput struct {
	Name    string `json:"name" label:"Name" validate:"required,notblank,max=200"`
	Email   string `json:"email" label:"Email" validate:"required,email,max=200"`
	Subject string `json:"subject" label:"Subject" validate:"required,notblank,max=200"`
	Message string `json:"message" label:"Message" validate:"required,notblank,max=500"`
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
