// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.Chinese

	_ = message.SetString(lang, KeyRequired, "必填字段")
	_ = message.SetString(lang, KeyInvalidEmail, "邮箱格式不正确")
	_ = message.SetString(lang, KeyInvalidUsername, "用户名格式不正确，只能包含字母、数字、下划线、短横线、点和中文字符")
	_ = message.SetString(lang, KeyUsernameNotFound, "用户名不存在")
	_ = message.SetString(lang, KeyPasswordTooShort, "密码至少需要%d个字符")
	_ = message.SetString(lang, KeyPasswordMismatch, "密码不匹配")
	_ = message.SetString(lang, KeyValidationFailed, "输入校验失败")
	_ = message.SetString(lang, KeyNoSessionFound, "未找到有效会话")
	_ = message.SetString(lang, KeyProviderDisabled, "该登录方式未启用")
	_ = message.SetString(lang, KeyUnsupportedLocale, "不支持的语言")
	_ = message.SetString(lang, KeyAdminKeyMissing, "服务端未配置管理密钥")
	_ = message.SetString(lang, KeyAdminCreateSuccess, "超级管理员创建成功")
	_ = message.SetString(lang, KeyAdminCreateDisabled, "管理员创建功能未启用")
	_ = message.SetString(lang, KeyTokenMissing, "未提供访问令牌")
	_ = message.SetString(lang, KeyAdminFieldsMissing, "邮箱和密码不能为空")
}
