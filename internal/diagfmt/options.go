package diagfmt

// PathMode is passed straight to source.File.FormatPath.
type PathMode string

const (
	PathModeAuto     PathMode = "auto"
	PathModeAbsolute PathMode = "absolute"
	PathModeRelative PathMode = "relative"
	PathModeBasename PathMode = "basename"
)

func (m PathMode) mode() string {
	if m == "" {
		return string(PathModeAuto)
	}
	return string(m)
}

type PrettyOpts struct {
	Color     bool
	Context   int8 // строк до и после строки ошибки
	PathMode  PathMode
	ShowNotes bool
}

type JSONOpts struct {
	IncludePositions bool
	IncludeNotes     bool
	PathMode         PathMode
	Max              int // 0 — без ограничения; Bag не трогается
}
