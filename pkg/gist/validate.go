package gist

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate は上流レスポンスの構造検証に使用するバリデータ。
// validator.Validate は並行利用に対して安全。
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate はGist自体の構造を検証する。含まれるファイルは検証しない。
// 一覧の中で実際に参照するGistとファイルだけを検証するため、
// ファイルは FileDescriptor.Validate で個別に検証する。
func (g GistSummary) Validate() error {
	if err := validate.Struct(g); err != nil {
		return fmt.Errorf("Gist %s の構造が不正: %s", g.ID, validationMessages(err))
	}
	return nil
}

// Validate はファイルの構造を検証する。
func (fd FileDescriptor) Validate() error {
	if err := validate.Struct(fd); err != nil {
		return fmt.Errorf("ファイル %s の構造が不正: %s", fd.Filename, validationMessages(err))
	}
	return nil
}

// validationMessages は検証エラーを読みやすい1行のメッセージに変換する。
func validationMessages(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	messages := make([]string, len(errs))
	for i, e := range errs {
		switch e.Tag() {
		case "required":
			messages[i] = e.Field() + " should not be empty"
		case "url":
			messages[i] = e.Field() + " should be a valid URL"
		case "gte":
			messages[i] = e.Field() + " should not be negative"
		default:
			messages[i] = e.Field() + " is invalid (" + e.Tag() + ")"
		}
	}
	return strings.Join(messages, " ; ")
}
