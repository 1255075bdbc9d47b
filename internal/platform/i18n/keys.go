// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package i18n

// Message keys rendered by the gateway.
const (
	KeyRequired            = "auth.required_field"
	KeyInvalidEmail        = "auth.invalid_email_format"
	KeyInvalidUsername     = "auth.invalid_username_format"
	KeyUsernameNotFound    = "auth.invalid_username"
	KeyPasswordTooShort    = "auth.password_requirements"
	KeyPasswordMismatch    = "auth.password_mismatch"
	KeyValidationFailed    = "auth.validation_failed"
	KeyNoSessionFound      = "auth.no_session_found"
	KeyProviderDisabled    = "auth.provider_disabled"
	KeyUnsupportedLocale   = "common.unsupported_locale"
	KeyAdminKeyMissing     = "admin.service_key_missing"
	KeyAdminCreateSuccess  = "admin.create_success"
	KeyAdminCreateDisabled = "admin.create_disabled"
	KeyTokenMissing        = "auth.token_missing"
	KeyAdminFieldsMissing  = "admin.fields_required"
)
