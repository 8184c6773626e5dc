package repository

import (
	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/storage"
	"github.com/mwumpini/WIP-HMS-sub001/internal/domain"
	"github.com/mwumpini/WIP-HMS-sub001/internal/validation"
)

var userProfileRules = validation.RuleTable{
	"name":  {validation.Required},
	"email": {validation.Email},
	"phone": {validation.Phone},
}

var companyProfileRules = validation.RuleTable{
	"name":  {validation.Required},
	"email": {validation.Email},
	"phone": {validation.Phone},
}

// Profiles stores the two single-record keys (signed-in user profile and
// company identity) through the same validation gate as the collections.
type Profiles struct {
	store *storage.Adapter
}

func NewProfiles(store *storage.Adapter) *Profiles {
	return &Profiles{store: store}
}

func (p *Profiles) UserProfile() (*domain.UserProfile, bool) {
	var profile domain.UserProfile
	if !p.store.Get(storage.KeyUser, &profile) {
		return nil, false
	}
	return &profile, true
}

func (p *Profiles) SetUserProfile(profile *domain.UserProfile) (bool, []string) {
	result := validation.Validate(profile, userProfileRules)
	if !result.IsValid {
		return false, result.Errors
	}
	return p.store.Set(storage.KeyUser, profile), nil
}

func (p *Profiles) Company() (*domain.CompanyProfile, bool) {
	var profile domain.CompanyProfile
	if !p.store.Get(storage.KeyCompany, &profile) {
		return nil, false
	}
	return &profile, true
}

func (p *Profiles) SetCompany(profile *domain.CompanyProfile) (bool, []string) {
	result := validation.Validate(profile, companyProfileRules)
	if !result.IsValid {
		return false, result.Errors
	}
	return p.store.Set(storage.KeyCompany, profile), nil
}
