package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"

	helper "vetmissions_backend/internals/helpers"
)

type ValueType string

const (
	TypeString    ValueType = "string"
	TypeBool      ValueType = "bool"
	TypeStringMap ValueType = "string_map"
	TypeBoolMap   ValueType = "bool_map"
	TypeIntList   ValueType = "int_list"
	TypeSlideList ValueType = "slide_list"
)

// HeroSlide is one entry of the home page carousel.
type HeroSlide struct {
	Image    string `json:"image"              validate:"required"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Link     string `json:"link,omitempty"`
}

// KeySpec declares the type of a settings key and, for strings, an optional
// closed set of values.
type KeySpec struct {
	Key     string
	Type    ValueType
	Allowed []string
}

const (
	KeySiteTitle       = "site_title"
	KeyContactEmail    = "contact_email"
	KeyContactPhone    = "contact_phone"
	KeyContactAddress  = "contact_address"
	KeyTheme           = "theme"
	KeySocialLinks     = "social_links"
	KeyFeatureToggles  = "feature_toggles"
	KeyHeroSlides      = "hero_slides"
	KeyDonationPresets = "donation_presets"
	KeyMaintenanceMode = "maintenance_mode"
)

var Registry = map[string]KeySpec{
	KeySiteTitle:       {Key: KeySiteTitle, Type: TypeString},
	KeyContactEmail:    {Key: KeyContactEmail, Type: TypeString},
	KeyContactPhone:    {Key: KeyContactPhone, Type: TypeString},
	KeyContactAddress:  {Key: KeyContactAddress, Type: TypeString},
	KeyTheme:           {Key: KeyTheme, Type: TypeString, Allowed: []string{"light", "dark"}},
	KeySocialLinks:     {Key: KeySocialLinks, Type: TypeStringMap},
	KeyFeatureToggles:  {Key: KeyFeatureToggles, Type: TypeBoolMap},
	KeyHeroSlides:      {Key: KeyHeroSlides, Type: TypeSlideList},
	KeyDonationPresets: {Key: KeyDonationPresets, Type: TypeIntList},
	KeyMaintenanceMode: {Key: KeyMaintenanceMode, Type: TypeBool},
}

func Lookup(key string) (KeySpec, bool) {
	spec, ok := Registry[key]
	return spec, ok
}

// Keys returns the known keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(Registry))
	for k := range Registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Decode parses raw strictly as the key's type and returns the typed value.
func (s KeySpec) Decode(raw []byte) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, helper.NewValidationError("value is required")
	}
	switch s.Type {
	case TypeString:
		var v string
		if err := strictUnmarshal(raw, &v); err != nil {
			return nil, s.typeError()
		}
		if len(s.Allowed) > 0 && !slices.Contains(s.Allowed, v) {
			return nil, helper.NewValidationError(fmt.Sprintf("value for %s must be one of: %s", s.Key, strings.Join(s.Allowed, ", ")))
		}
		return v, nil
	case TypeBool:
		var v bool
		if err := strictUnmarshal(raw, &v); err != nil {
			return nil, s.typeError()
		}
		return v, nil
	case TypeStringMap:
		var v map[string]string
		if err := strictUnmarshal(raw, &v); err != nil {
			return nil, s.typeError()
		}
		return v, nil
	case TypeBoolMap:
		var v map[string]bool
		if err := strictUnmarshal(raw, &v); err != nil {
			return nil, s.typeError()
		}
		return v, nil
	case TypeIntList:
		var v []int
		if err := strictUnmarshal(raw, &v); err != nil {
			return nil, s.typeError()
		}
		return v, nil
	case TypeSlideList:
		var v []HeroSlide
		if err := strictUnmarshal(raw, &v); err != nil {
			return nil, s.typeError()
		}
		for i := range v {
			if err := helper.ValidateStruct(&v[i]); err != nil {
				ve, _ := helper.IsValidation(err)
				msgs := make([]string, 0, len(ve.Messages))
				for _, m := range ve.Messages {
					msgs = append(msgs, fmt.Sprintf("%s[%d].%s", s.Key, i, m))
				}
				return nil, helper.NewValidationError(msgs...)
			}
		}
		return v, nil
	}
	return nil, fmt.Errorf("setting %s has unknown type %q", s.Key, s.Type)
}

// Normalize decodes raw and re-encodes it in canonical form.
func (s KeySpec) Normalize(raw []byte) ([]byte, error) {
	v, err := s.Decode(raw)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func (s KeySpec) typeError() error {
	return helper.NewValidationError(fmt.Sprintf("value for %s must be of type %s", s.Key, s.Type))
}

func strictUnmarshal(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("trailing data")
	}
	return nil
}

// DecodeAs returns the stored value of m as T.
func DecodeAs[T any](m SettingModel) (T, error) {
	var zero T
	spec, ok := Lookup(m.SettingKey)
	if !ok {
		return zero, fmt.Errorf("unknown setting key %q", m.SettingKey)
	}
	v, err := spec.Decode(m.SettingValue)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("setting %s is %s, not %T", m.SettingKey, spec.Type, zero)
	}
	return typed, nil
}
