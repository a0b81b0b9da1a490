package models

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var statusValues = []string{STATUS_NONE, STATUS_PUBLIC, STATUS_DRAFT, STATUS_UNLISTED}

var licenseOptions = []Option{
	{LICENSE_ALL_RIGHTS_RESERVED, "All rights reserved"},
	{LICENSE_CC_40_BY, "CC 4.0 BY"},
	{LICENSE_CC_40_BY_ND, "CC 4.0 BY-ND"},
	{LICENSE_CC_40_BY_SA, "CC 4.0 BY-SA"},
	{LICENSE_CC_40_BY_NC, "CC 4.0 BY-NC"},
	{LICENSE_CC_40_BY_NC_ND, "CC 4.0 BY-NC-ND"},
	{LICENSE_CC_40_BY_NC_SA, "CC 4.0 BY-NC-SA"},
	{LICENSE_CC_40_ZERO, "CC Copyright waiver"},
	{LICENSE_PUBLIC_DOMAIN, "Public domain"},
}

// PostStatuses lists the crosspost statuses in display order.
func PostStatuses() []Option {
	title := cases.Title(language.English)
	result := make([]Option, 0, len(statusValues))
	for _, v := range statusValues {
		result = append(result, Option{Value: v, Label: title.String(v)})
	}
	return result
}

// PostLicenses lists the Medium licenses in display order.
func PostLicenses() []Option {
	result := make([]Option, len(licenseOptions))
	copy(result, licenseOptions)
	return result
}

func IsValidStatus(s string) bool {
	return containsValue(PostStatuses(), s)
}

func IsValidLicense(s string) bool {
	return containsValue(licenseOptions, s)
}

// Label returns the display label for value, or value itself when unknown.
func Label(options []Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

func containsValue(options []Option, s string) bool {
	for _, o := range options {
		if o.Value == s {
			return true
		}
	}
	return false
}
