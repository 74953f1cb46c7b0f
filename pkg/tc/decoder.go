// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package tc

import (
	"github.com/Thermoquad/pusstat/pkg/ccsds"
	"github.com/Thermoquad/pusstat/pkg/ecss"
)

// FromBytes decodes a telecommand from the start of buf and returns it with
// the packet length declared by its primary header. Trailing bytes beyond
// that length are ignored.
//
// The returned packet borrows buf: its application data and RawBytes are
// views into it. Automatic checksum calculation is disabled and the verified
// checksum is cached.
func FromBytes(buf []byte) (*PusTc, int, error) {
	rawLen := len(buf)
	if rawLen < MinLenWithoutAppData {
		return nil, 0, &ecss.TooShortError{Found: rawLen}
	}

	sph, err := ccsds.FromBytes(buf[:ccsds.HeaderLen])
	if err != nil {
		return nil, 0, err
	}
	total := sph.TotalLen()
	if rawLen < total || total < MinLenWithoutAppData {
		return nil, 0, &ecss.TooShortError{Found: rawLen}
	}

	sec, err := DecodeSecondaryHeader(buf[secondaryHeaderOffset:appDataOffset])
	if err != nil {
		return nil, 0, err
	}

	raw := buf[:total:total]
	if err := ecss.VerifyCRC(raw); err != nil {
		return nil, 0, err
	}
	crc, err := ecss.CRCFromRaw(raw)
	if err != nil {
		return nil, 0, err
	}

	var appData []byte
	if end := total - ecss.CRCLen; end > appDataOffset {
		appData = raw[appDataOffset:end:end]
	}

	return &PusTc{
		spHeader:               sph,
		secHeader:              sec,
		CalcCRCOnSerialization: false,
		rawData:                raw,
		appData:                appData,
		crc16:                  crc,
		crcSet:                 true,
	}, total, nil
}
