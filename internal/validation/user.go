package validation

// ValidateSignUp 校验注册表单
func ValidateSignUp(email, password, name string) Result {
	errors := make(map[string]string)

	if msg := firstOf(
		Required(email, "邮箱"),
		Email(email, "邮箱"),
	); msg != "" {
		errors["email"] = msg
	}

	if msg := firstOf(
		Required(password, "密码"),
		MinLength(password, 6, "密码"),
		MaxLength(password, 72, "密码"),
	); msg != "" {
		errors["password"] = msg
	}

	if msg := firstOf(
		Required(name, "昵称"),
		MaxLength(name, 50, "昵称"),
	); msg != "" {
		errors["name"] = msg
	}

	return Result{IsValid: len(errors) == 0, Errors: errors}
}
