// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Thermoquad/pusstat/pkg/ccsds"
	"github.com/Thermoquad/pusstat/pkg/tc"
	"github.com/Thermoquad/pusstat/pkg/timecode"
)

var (
	encodeAPID       uint16
	encodeSeq        uint16
	encodeService    uint8
	encodeSubservice uint8
	encodeAck        uint8
	encodeSourceID   uint16
	encodeData       string
	encodeManualCRC  bool
	encodeRelease    string
	encodeFormat     string
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Build a PUS-C telecommand",
	Long: `Build a PUS-C telecommand and print it.

APID, source ID and acknowledgement flags default to the packet section of
the configuration. Without --service the packet is a TEST ping (17,1).

With --release the packet is wrapped into a time-based schedule insert
request (11,4) releasing it at the given RFC 3339 time. The outer request
reuses the APID and sequence count.

Output formats:
  hex   - the wire bytes as a hex string (default)
  cbor  - the structured CBOR form as a hex string
  yaml  - decoded fields`,
	Args: cobra.NoArgs,
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().Uint16Var(&encodeAPID, "apid", 0, "Application process ID (0x000-0x7FF)")
	encodeCmd.Flags().Uint16Var(&encodeSeq, "seq", 0, "Sequence count (0x0000-0x3FFF)")
	encodeCmd.Flags().Uint8Var(&encodeService, "service", 17, "PUS service type")
	encodeCmd.Flags().Uint8Var(&encodeSubservice, "subservice", 1, "PUS message subtype")
	encodeCmd.Flags().Uint8Var(&encodeAck, "ack", 0, "Acknowledgement flags (0x0-0xF)")
	encodeCmd.Flags().Uint16Var(&encodeSourceID, "source-id", 0, "Source ID")
	encodeCmd.Flags().StringVarP(&encodeData, "data", "d", "", "Application data as hex")
	encodeCmd.Flags().BoolVar(&encodeManualCRC, "manual-crc", false, "Compute the CRC before serialization instead of during it")
	encodeCmd.Flags().StringVar(&encodeRelease, "release", "", "Wrap into a schedule insert request released at this RFC 3339 time")
	encodeCmd.Flags().StringVarP(&encodeFormat, "format", "f", "hex", "Output format (hex, cbor, yaml)")
}

// encodeOptions collects everything needed to build one telecommand
type encodeOptions struct {
	apid       uint16
	seq        uint16
	service    uint8
	subservice uint8
	ack        uint8
	sourceID   uint16
	appData    []byte
	manualCRC  bool
	release    *time.Time
}

func runEncode(cmd *cobra.Command, args []string) error {
	opts := encodeOptions{
		apid:       uint16(cfg.Packet.APID),
		seq:        encodeSeq,
		service:    encodeService,
		subservice: encodeSubservice,
		ack:        uint8(cfg.Packet.Ack),
		sourceID:   uint16(cfg.Packet.SourceID),
		manualCRC:  encodeManualCRC,
	}
	flags := cmd.Flags()
	if flags.Changed("apid") {
		opts.apid = encodeAPID
	}
	if flags.Changed("ack") {
		opts.ack = encodeAck
	}
	if flags.Changed("source-id") {
		opts.sourceID = encodeSourceID
	}
	if encodeData != "" {
		data, err := parseHex(encodeData)
		if err != nil {
			return fmt.Errorf("--data: %w", err)
		}
		opts.appData = data
	}
	if encodeRelease != "" {
		t, err := time.Parse(time.RFC3339Nano, encodeRelease)
		if err != nil {
			return fmt.Errorf("--release: %w", err)
		}
		opts.release = &t
	}

	p, err := buildTelecommand(opts)
	if err != nil {
		return err
	}
	log.Debug().
		Uint16("apid", p.APID()).
		Uint16("seq", p.SeqCount()).
		Uint8("service", p.Service()).
		Uint8("subservice", p.Subservice()).
		Int("length", p.LenPacked()).
		Msg("built telecommand")

	return writeEncoded(cmd, p, encodeFormat)
}

// buildTelecommand creates the telecommand described by opts
func buildTelecommand(opts encodeOptions) (*tc.PusTc, error) {
	if opts.ack > 0xF {
		return nil, fmt.Errorf("ack flags out of range: 0x%X", opts.ack)
	}
	if len(opts.appData) > tc.MaxAppDataLen {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", tc.ErrAppDataTooLong, len(opts.appData), tc.MaxAppDataLen)
	}
	sph, err := ccsds.TcUnseg(opts.apid, opts.seq, 0)
	if err != nil {
		return nil, err
	}

	sec := tc.NewSecondaryHeader(opts.service, opts.subservice, opts.ack, opts.sourceID)
	p := tc.New(&sph, sec, opts.appData, true)

	if opts.release != nil {
		releaseTime, err := timecode.CdsShortFromTime(*opts.release)
		if err != nil {
			return nil, err
		}
		outer, err := ccsds.TcUnseg(opts.apid, opts.seq, 0)
		if err != nil {
			return nil, err
		}
		if p, err = tc.NewScheduledCommand(&outer, releaseTime, p); err != nil {
			return nil, err
		}
		p.SetSourceID(opts.sourceID)
		p.SetAckField(opts.ack)
	}

	if opts.manualCRC {
		p.CalcCRCOnSerialization = false
		if err := p.CalcOwnCRC16(); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// writeEncoded prints p in the requested format
func writeEncoded(cmd *cobra.Command, p *tc.PusTc, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case "hex":
		raw, err := p.Bytes()
		if err != nil {
			return fmt.Errorf("failed to encode packet: %w", err)
		}
		_, err = fmt.Fprintln(out, hex.EncodeToString(raw))
		return err

	case "cbor":
		data, err := cbor.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to encode CBOR: %w", err)
		}
		_, err = fmt.Fprintln(out, hex.EncodeToString(data))
		return err

	case "yaml":
		// Decode the wire form so the view carries raw bytes and the CRC
		raw, err := p.Bytes()
		if err != nil {
			return fmt.Errorf("failed to encode packet: %w", err)
		}
		decoded, _, err := tc.FromBytes(raw)
		if err != nil {
			return fmt.Errorf("failed to decode packet: %w", err)
		}
		return writeYAML(out, newPacketView(decoded))

	default:
		return fmt.Errorf("unknown format %q (must be hex, cbor, or yaml)", format)
	}
}
