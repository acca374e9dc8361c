package relay

import (
	"fmt"
	"strings"

	"github.com/nao1215/gistrelay/pkg/gist"
)

// Resolve はGist一覧から参照先のGistとファイルを探す。
// Gist IDとファイル名はどちらも大文字小文字を区別して完全一致で比較する。
// ファイル名が無い場合は上流の順序で先頭のファイルを返す。
func Resolve(gists []gist.GistSummary, ref GistReference) (gist.GistSummary, gist.FileDescriptor, error) {
	if len(gists) == 0 {
		return gist.GistSummary{}, gist.FileDescriptor{}, newError(KindNoGistsForUser, "No public gists for "+ref.Username)
	}

	var found *gist.GistSummary
	for i := range gists {
		if gists[i].ID == ref.GistID {
			found = &gists[i]
			break
		}
	}
	if found == nil {
		return gist.GistSummary{}, gist.FileDescriptor{}, newError(KindGistNotFound, "No gist with id "+ref.GistID)
	}

	var (
		file gist.FileDescriptor
		ok   bool
	)
	if ref.Filename != "" {
		if file, ok = found.Files.Lookup(ref.Filename); !ok {
			return gist.GistSummary{}, gist.FileDescriptor{}, newError(KindFileNotFound, "No file named "+ref.Filename)
		}
	} else if file, ok = found.Files.First(); !ok {
		return gist.GistSummary{}, gist.FileDescriptor{}, newError(KindFileNotFound, "No files")
	}
	return *found, file, nil
}

// validateResolved は解決したGistとファイルの構造を検証する。
// 一覧の他のGistは参照しないため検証しない。
func validateResolved(g gist.GistSummary, file gist.FileDescriptor) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("%w: %w", gist.ErrUpstream, err)
	}
	if err := file.Validate(); err != nil {
		return fmt.Errorf("%w: %w", gist.ErrUpstream, err)
	}
	return nil
}

const (
	// contentTypeJavaScript はjsで終わるファイル名に使用するContent-Type。
	contentTypeJavaScript = "application/javascript"
	// contentTypeText はそれ以外のファイル名に使用するContent-Type。
	contentTypeText = "text/plain"
)

// ContentTypeFor はファイル名からContent-Typeを決める。
// 拡張子ではなく末尾の文字列 "js" だけを見るため、"objs" のような名前も
// application/javascript になる。既存クライアントとの互換のためこの判定を維持する。
func ContentTypeFor(filename string) string {
	if strings.HasSuffix(filename, "js") {
		return contentTypeJavaScript
	}
	return contentTypeText
}
