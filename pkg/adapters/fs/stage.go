package fs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// StagePrefix names the temp files a snapshot is encoded into before it
// replaces the live one.
const StagePrefix = ".docprotocol-stage-"

const snapshotPerm = 0644

// stagedSnapshot is an encoded snapshot sitting next to the live file.
// publish swaps it in with a rename; discard drops it.
type stagedSnapshot struct {
	target string
	tmp    string
	done   bool
}

// stageSnapshot streams write into a synced temp file in target's directory.
func stageSnapshot(target string, write func(io.Writer) error) (*stagedSnapshot, error) {
	f, err := os.CreateTemp(filepath.Dir(target), StagePrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("failed to stage snapshot: %w", err)
	}
	st := &stagedSnapshot{target: target, tmp: f.Name()}

	w := bufio.NewWriter(f)
	err = write(w)
	if err == nil {
		err = w.Flush()
	}
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(st.tmp, snapshotPerm)
	}
	if err != nil {
		st.discard()
		return nil, fmt.Errorf("failed to stage snapshot: %w", err)
	}
	return st, nil
}

func (st *stagedSnapshot) publish() error {
	if st.done {
		return errors.New("staged snapshot already used")
	}
	if err := os.Rename(st.tmp, st.target); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(st.target), err)
	}
	st.done = true
	return nil
}

func (st *stagedSnapshot) discard() {
	if st.done {
		return
	}
	_ = os.Remove(st.tmp)
	st.done = true
}

// liveSnapshot is what the snapshot file held before a write, so a failed
// commit can put it back.
type liveSnapshot struct {
	data    []byte
	existed bool
}

func readLive(path string) (liveSnapshot, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return liveSnapshot{}, nil
	}
	if err != nil {
		return liveSnapshot{}, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return liveSnapshot{data: data, existed: true}, nil
}

// restore writes the previous contents back, or removes the file when
// there was none.
func (l liveSnapshot) restore(path string) error {
	if !l.existed {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove snapshot: %w", err)
		}
		return nil
	}
	st, err := stageSnapshot(path, func(w io.Writer) error {
		_, err := w.Write(l.data)
		return err
	})
	if err != nil {
		return err
	}
	return st.publish()
}
