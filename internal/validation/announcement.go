package validation

// ValidateAnnouncement 校验公告表单
func ValidateAnnouncement(title, content string) Result {
	errors := make(map[string]string)

	if msg := firstOf(
		Required(title, "公告标题"),
		MinLength(title, 5, "公告标题"),
		MaxLength(title, 100, "公告标题"),
	); msg != "" {
		errors["title"] = msg
	}

	if msg := firstOf(
		Required(content, "公告内容"),
		MinLength(content, 20, "公告内容"),
		MaxLength(content, 1000, "公告内容"),
	); msg != "" {
		errors["content"] = msg
	}

	return Result{IsValid: len(errors) == 0, Errors: errors}
}
