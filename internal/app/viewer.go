package app

type viewerState int

const (
	awaitingResponse viewerState = iota
	done
)

// viewer tracks the raw-row cursor. It only moves on the user's answers,
// never on how many rows remain.
type viewer struct {
	state    viewerState
	cursor   int
	pageSize int
}

func newViewer(pageSize int) *viewer {
	return &viewer{state: awaitingResponse, pageSize: pageSize}
}

// answer applies a yes/no response. On yes it returns the offset of the
// page to print and advances the cursor; on no it moves to done.
func (v *viewer) answer(yes bool) (offset int, show bool) {
	if v.state == done {
		return 0, false
	}
	if !yes {
		v.state = done
		return 0, false
	}
	offset = v.cursor
	v.cursor += v.pageSize
	return offset, true
}
