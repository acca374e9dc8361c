package relay

import (
	"net/url"
	"strings"
)

// GistReference はリクエストパスから取り出したGistの参照。
type GistReference struct {
	// Username はGistの所有者。
	Username string
	// GistID はGistの識別子。
	GistID string
	// Filename は対象ファイル名。空の場合は先頭のファイルを対象とする。
	Filename string
}

// maxSegments はパスに含められる空でないセグメントの最大数。
const maxSegments = 3

// ParseGistPath はエスケープされたリクエストパスを /{username}/{gistId}[/{filename}] として解釈する。
// セグメントへの分割後に各セグメントをデコードするため、%2F はセグメント内の "/" になる。
// 空のセグメントは無視する。デコードできないセグメントはそのまま使う。
func ParseGistPath(escapedPath string) (GistReference, error) {
	var segments []string
	for _, s := range strings.Split(escapedPath, "/") {
		if s == "" {
			continue
		}
		if decoded, err := url.PathUnescape(s); err == nil {
			s = decoded
		}
		segments = append(segments, s)
	}

	switch {
	case len(segments) < 1:
		return GistReference{}, newError(KindMissingUsername, "Missing username")
	case len(segments) < 2:
		return GistReference{}, newError(KindMissingGistID, "Missing gisthash")
	case len(segments) > maxSegments:
		return GistReference{}, newError(KindTooManyArguments,
			"Too many arguments: "+strings.Join(segments[maxSegments:], ","))
	}

	ref := GistReference{Username: segments[0], GistID: segments[1]}
	if len(segments) == maxSegments {
		ref.Filename = segments[2]
	}
	return ref, nil
}
