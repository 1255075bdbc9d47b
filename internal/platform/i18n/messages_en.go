// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	_ = message.SetString(lang, KeyRequired, "This field is required")
	_ = message.SetString(lang, KeyInvalidEmail, "Invalid email format")
	_ = message.SetString(lang, KeyInvalidUsername, "Username format is invalid, can only contain letters, numbers, underscores, hyphens, dots and Chinese characters")
	_ = message.SetString(lang, KeyUsernameNotFound, "Username not found")
	_ = message.SetString(lang, KeyPasswordTooShort, "Password must be at least %d characters")
	_ = message.SetString(lang, KeyPasswordMismatch, "Passwords do not match")
	_ = message.SetString(lang, KeyValidationFailed, "Validation failed")
	_ = message.SetString(lang, KeyNoSessionFound, "No valid session found")
	_ = message.SetString(lang, KeyProviderDisabled, "This sign-in provider is not enabled")
	_ = message.SetString(lang, KeyUnsupportedLocale, "Unsupported locale")
	_ = message.SetString(lang, KeyAdminKeyMissing, "Server is missing the service role key")
	_ = message.SetString(lang, KeyAdminCreateSuccess, "Super admin created successfully")
	_ = message.SetString(lang, KeyAdminCreateDisabled, "Admin creation is disabled")
	_ = message.SetString(lang, KeyTokenMissing, "Access token not provided")
	_ = message.SetString(lang, KeyAdminFieldsMissing, "Email and password are required")
}
