// ============================================================================
// cta - Conformance Test Application front-end
// ============================================================================
//
// Package:     journal
// Description: CBOR encoding of entry attributes
// Author:      Mike Stoffels
// Created:     2026-10-16
// License:     MIT
// ============================================================================

package journal

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var (
	attrEncMode cbor.EncMode
	attrDecMode cbor.DecMode
)

func init() {
	var err error

	// Canonical ordering keeps identical attribute sets byte-identical
	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	attrEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create attribute CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthAllowed,
	}
	attrDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create attribute CBOR decoder mode: %v", err))
	}
}

// encodeAttrs returns nil for an empty attribute set
func encodeAttrs(attrs map[string]string) ([]byte, error) {
	if len(attrs) == 0 {
		return nil, nil
	}
	return attrEncMode.Marshal(attrs)
}

func decodeAttrs(data []byte) (map[string]string, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var attrs map[string]string
	if err := attrDecMode.Unmarshal(data, &attrs); err != nil {
		return nil, fmt.Errorf("decode attributes: %w", err)
	}
	return attrs, nil
}
