package services

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"maisonazur/internal/domain"
	"maisonazur/internal/repos"
	"maisonazur/internal/validate"
)

// LeadService stores contact-form submissions.
type LeadService struct {
	Leads *repos.LeadRepo
	Props *repos.PropertyRepo
}

func NewLeadService(leads *repos.LeadRepo, props *repos.PropertyRepo) *LeadService {
	return &LeadService{Leads: leads, Props: props}
}

type LeadInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Message      string `json:"message"`
	PropertySlug string `json:"propertySlug"`
}

func (s *LeadService) Submit(in LeadInput) (domain.Lead, error) {
	name, ok := validate.Name(in.Name)
	if !ok {
		return domain.Lead{}, invalidf("name is required")
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		return domain.Lead{}, invalidf("enter a valid email address")
	}
	phone := strings.TrimSpace(in.Phone)
	if phone != "" {
		if _, ok := validate.Phone(phone); !ok {
			return domain.Lead{}, invalidf("enter a valid phone number")
		}
	}
	msg := strings.TrimSpace(in.Message)
	if msg == "" || len(msg) > 2000 {
		return domain.Lead{}, invalidf("message is required")
	}

	l := domain.Lead{
		ID:      uuid.NewString(),
		Name:    name,
		Email:   email,
		Phone:   phone,
		Message: msg,
	}
	if slug := strings.TrimSpace(in.PropertySlug); slug != "" {
		p, err := s.Props.BySlug(slug)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.Lead{}, invalidf("unknown property %q", slug)
			}
			return domain.Lead{}, err
		}
		l.PropertyID = &p.ID
	}

	if err := s.Leads.Create(&l); err != nil {
		return domain.Lead{}, err
	}
	return l, nil
}
