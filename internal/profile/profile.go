package profile

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"mealmind/internal/platform/docstore"
)

// UsersCollection holds one document per user; profile fields sit at its top
// level next to the pantry and shopping list.
const UsersCollection = "users"

// Profile holds optional demographic and dietary details. Values are stored
// as the user typed them.
type Profile struct {
	Age         string `json:"age"`
	Gender      string `json:"gender"`
	Height      string `json:"height"`
	Weight      string `json:"weight"`
	CalorieGoal string `json:"calorieGoal"`
	Diet        string `json:"diet"`
}

// Documents is the part of the document store the profile store needs.
type Documents interface {
	Get(ctx context.Context, collection, id string) (*docstore.Document, error)
	MergeFields(ctx context.Context, collection, id string, fields map[string]any) error
}

// Store reads and writes profiles inside user documents.
type Store struct {
	docs Documents
}

// NewStore creates a new Store.
func NewStore(docs Documents) *Store {
	return &Store{docs: docs}
}

// Get returns the user's profile. Unknown users get an empty profile.
func (s *Store) Get(ctx context.Context, userID string) (*Profile, error) {
	doc, err := s.docs.Get(ctx, UsersCollection, userID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return &Profile{}, nil
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	p := &Profile{}
	for field, dst := range p.fields() {
		*dst = stringValue(doc.Data[field])
	}
	return p, nil
}

// Save writes every profile field into the user document, leaving the
// user's other data alone.
func (s *Store) Save(ctx context.Context, userID string, p *Profile) error {
	patch := make(map[string]any, 6)
	for field, value := range p.fields() {
		patch[field] = *value
	}
	if err := s.docs.MergeFields(ctx, UsersCollection, userID, patch); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// stringValue reads a stored field as text; older documents may hold numbers.
func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func (p *Profile) fields() map[string]*string {
	return map[string]*string{
		"age":         &p.Age,
		"gender":      &p.Gender,
		"height":      &p.Height,
		"weight":      &p.Weight,
		"calorieGoal": &p.CalorieGoal,
		"diet":        &p.Diet,
	}
}
