package gist

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// GistSummary はGist一覧APIが返す1件分のGist。
type GistSummary struct {
	// ID はGistの識別子。
	ID string `json:"id" validate:"required"`
	// URL はGistのAPI URL。
	URL string `json:"url" validate:"omitempty,url"`
	// Files はGistに含まれるファイル。上流のキー順序を保持する。
	Files Files `json:"files"`
}

// FileDescriptor はGist内の1ファイルを表す。
type FileDescriptor struct {
	// Filename はファイル名。
	Filename string `json:"filename" validate:"required"`
	// Type はMIMEタイプ。
	Type string `json:"type"`
	// Language は上流が判定した言語。判定不能な場合は空文字列。
	Language string `json:"language"`
	// RawURL はファイル本文を取得するURL。
	RawURL string `json:"raw_url" validate:"required,url"`
	// Size はファイルサイズ（バイト）。
	Size int64 `json:"size" validate:"gte=0"`
}

// Files は files オブジェクトを上流のキー順序のまま保持する。
type Files []FileDescriptor

// UnmarshalJSON は files オブジェクトをキー順序を保ったままデコードする。
// null は空として扱い、キーの重複はエラーとする。
func (f *Files) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("filesのデコードに失敗: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("filesがオブジェクトではありません: %v", tok)
	}

	var files Files
	seen := make(map[string]struct{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("filesのキーのデコードに失敗: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("filesのキーが文字列ではありません: %v", tok)
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("filesのキーが重複しています: %s", key)
		}
		seen[key] = struct{}{}

		var fd FileDescriptor
		if err := dec.Decode(&fd); err != nil {
			return fmt.Errorf("ファイル %s のデコードに失敗: %w", key, err)
		}
		files = append(files, fd)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("filesの終端のデコードに失敗: %w", err)
	}

	*f = files
	return nil
}

// First は先頭のファイルを返す。ファイルが無い場合はfalseを返す。
func (f Files) First() (FileDescriptor, bool) {
	if len(f) == 0 {
		return FileDescriptor{}, false
	}
	return f[0], true
}

// Lookup はファイル名が完全一致するファイルを先頭から探す。
// 大文字と小文字は区別する。
func (f Files) Lookup(filename string) (FileDescriptor, bool) {
	for _, fd := range f {
		if fd.Filename == filename {
			return fd, true
		}
	}
	return FileDescriptor{}, false
}
