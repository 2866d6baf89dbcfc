package content

import (
	"encoding/json"
	"fmt"
	"strings"

	"rapv/site/internal/models"
)

const (
	KeySchoolNameEn = "school_name_en"
	KeySchoolNameHi = "school_name_hi"
	KeySchoolSubEn  = "school_sub_en"
	KeySchoolSubHi  = "school_sub_hi"
	KeyAddressEn    = "address_en"
	KeyAddressHi    = "address_hi"
	KeyPhone        = "phone"
	KeyEmail        = "email"
	KeyAboutImage   = "about_image"
	KeyLogo         = "logo"
	KeyHeroImages   = "hero_images"
)

// SettingKeys lists every settings row the site reads and writes, in the
// order they are persisted.
var SettingKeys = []string{
	KeySchoolNameEn, KeySchoolNameHi,
	KeySchoolSubEn, KeySchoolSubHi,
	KeyAddressEn, KeyAddressHi,
	KeyPhone, KeyEmail,
	KeyAboutImage, KeyLogo, KeyHeroImages,
}

const PlaceholderHeroImage = "https://picsum.photos/id/202/1920/1080"

func DefaultSiteConfig() models.SiteConfig {
	return models.SiteConfig{
		SchoolName: models.Text("Rajkiya Ashram Paddhati Vidyalaya", "राजकीय आश्रम पद्धति विद्यालय"),
		SubTitle:   models.Text("Samaj Kalyan Vibhag, Uttar Pradesh", "समाज कल्याण विभाग, उत्तर प्रदेश"),
		Address: models.Text(
			"Zila Dindoli, Nagal, Saharanpur, Uttar Pradesh",
			"जिला डिंडोली, नागल, सहारनपुर, उत्तर प्रदेश",
		),
		Phone:      "+91 132 272 0000",
		Email:      "rapvsaharanpur@gmail.com",
		HeroImages: []string{PlaceholderHeroImage},
		AboutImage: "https://picsum.photos/id/237/600/800",
	}
}

// LoadSiteConfig overlays settings rows on defaults. Only non-empty values
// override. A malformed hero_images value keeps the default list and is
// reported in the returned warnings.
func LoadSiteConfig(defaults models.SiteConfig, rows []models.Setting) (models.SiteConfig, []string) {
	cfg := defaults
	cfg.HeroImages = append([]string(nil), defaults.HeroImages...)

	var warnings []string
	for _, row := range rows {
		value := row.Value
		if strings.TrimSpace(value) == "" {
			continue
		}
		switch row.Key {
		case KeySchoolNameEn:
			cfg.SchoolName.En = value
		case KeySchoolNameHi:
			cfg.SchoolName.Hi = value
		case KeySchoolSubEn:
			cfg.SubTitle.En = value
		case KeySchoolSubHi:
			cfg.SubTitle.Hi = value
		case KeyAddressEn:
			cfg.Address.En = value
		case KeyAddressHi:
			cfg.Address.Hi = value
		case KeyPhone:
			cfg.Phone = value
		case KeyEmail:
			cfg.Email = value
		case KeyAboutImage:
			cfg.AboutImage = value
		case KeyLogo:
			cfg.Logo = value
		case KeyHeroImages:
			images, err := parseHeroImages(value)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("%s: %v", KeyHeroImages, err))
				continue
			}
			cfg.HeroImages = images
		}
	}
	return cfg, warnings
}

func parseHeroImages(raw string) ([]string, error) {
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	list, ok := decoded.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a json array")
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("empty list")
	}
	images := make([]string, 0, len(list))
	for _, entry := range list {
		url, ok := entry.(string)
		if !ok || strings.TrimSpace(url) == "" {
			return nil, fmt.Errorf("expected non-empty strings")
		}
		images = append(images, url)
	}
	return images, nil
}

// FlattenSiteConfig turns cfg back into the fixed settings rows.
func FlattenSiteConfig(cfg models.SiteConfig) []models.Setting {
	heroImages := cfg.HeroImages
	if heroImages == nil {
		heroImages = []string{}
	}
	encoded, _ := json.Marshal(heroImages)

	values := map[string]string{
		KeySchoolNameEn: cfg.SchoolName.En,
		KeySchoolNameHi: cfg.SchoolName.Hi,
		KeySchoolSubEn:  cfg.SubTitle.En,
		KeySchoolSubHi:  cfg.SubTitle.Hi,
		KeyAddressEn:    cfg.Address.En,
		KeyAddressHi:    cfg.Address.Hi,
		KeyPhone:        cfg.Phone,
		KeyEmail:        cfg.Email,
		KeyAboutImage:   cfg.AboutImage,
		KeyLogo:         cfg.Logo,
		KeyHeroImages:   string(encoded),
	}
	rows := make([]models.Setting, 0, len(SettingKeys))
	for _, key := range SettingKeys {
		rows = append(rows, models.Setting{Key: key, Value: values[key]})
	}
	return rows
}

// siteConfigForm is the validated shape of an admin settings submission.
type siteConfigForm struct {
	SchoolName models.BilingualText `validate:"required"`
	SubTitle   models.BilingualText `validate:"required"`
	Address    models.BilingualText `validate:"required"`
	Phone      string               `validate:"required"`
	Email      string               `validate:"required,email"`
	HeroImages []string             `validate:"dive,required"`
	AboutImage string
	Logo       string
}

func validateSiteConfig(cfg models.SiteConfig) error {
	return validateRecord(siteConfigForm{
		SchoolName: cfg.SchoolName,
		SubTitle:   cfg.SubTitle,
		Address:    cfg.Address,
		Phone:      cfg.Phone,
		Email:      cfg.Email,
		HeroImages: cfg.HeroImages,
		AboutImage: cfg.AboutImage,
		Logo:       cfg.Logo,
	})
}
