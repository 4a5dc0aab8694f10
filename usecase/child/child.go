// Package child serves the static child profile page.
package child

import (
	"bytes"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/fastygo/careconnect/assets"
	"github.com/fastygo/careconnect/domain"
)

type UseCase struct {
	profile domain.ChildProfile
}

// Load reads the profile from path, or from the built-in document when path is empty.
func Load(path string, logger *zap.Logger) (*UseCase, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	doc := assets.ChildProfile
	source := "embedded"
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read child profile: %w", err)
		}
		doc = raw
		source = path
	}

	profile, err := Parse(doc)
	if err != nil {
		return nil, err
	}
	logger.Info("child profile loaded", zap.String("source", source), zap.String("name", profile.Name))
	return &UseCase{profile: profile}, nil
}

// Parse decodes a YAML profile document. Unknown keys are rejected so typos in a
// hand-edited file surface at boot.
func Parse(doc []byte) (domain.ChildProfile, error) {
	var profile domain.ChildProfile
	dec := yaml.NewDecoder(bytes.NewReader(doc))
	dec.KnownFields(true)
	if err := dec.Decode(&profile); err != nil {
		return domain.ChildProfile{}, domain.WrapError(domain.ErrCodeInvalid, "invalid child profile", err)
	}
	if profile.Name == "" {
		return domain.ChildProfile{}, domain.NewError(domain.ErrCodeInvalid, "child profile has no name")
	}
	return profile, nil
}

// Profile returns a copy of the loaded profile.
func (uc *UseCase) Profile() domain.ChildProfile {
	p := uc.profile
	p.Health = append([]string(nil), p.Health...)
	p.RoutineNotes = append([]string(nil), p.RoutineNotes...)
	return p
}
