package filesave

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/signadot/filesave/doc"
	"github.com/signadot/filesave/store"
)

// ApplyJSONPatch applies an RFC 6902 patch to the JSON form of the store,
// see store.Store.MarshalJSON.  The store is replaced only if the patch
// applies and its result is a valid store.  A read-only system fails with
// ErrReadOnly.
func (s *System) ApplyJSONPatch(patch []byte) error {
	if s.ReadOnly() {
		return fmt.Errorf("%w: patch refused", ErrReadOnly)
	}
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return err
	}
	d, err := json.Marshal(s.doc.Store)
	if err != nil {
		return err
	}
	out, err := ops.Apply(d)
	if err != nil {
		return err
	}
	res := doc.NewStore(store.WithLogger(s.opts.log))
	if err := json.Unmarshal(out, res); err != nil {
		return fmt.Errorf("patched store: %w", err)
	}
	s.doc.Store = res
	s.opts.log.Debug("applied json patch", "ops", len(ops))
	return nil
}
