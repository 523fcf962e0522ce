// Package qris builds the payment-reference payload embedded in invoice
// QR codes. The engine only produces the text payload; rasterizing it
// into an image is the renderer's job.
package qris

import (
	"fmt"
	"strings"
)

// payload format version, bumped only on breaking layout changes
const version = "01"

// Payload is the structured payment reference for one invoice
type Payload struct {
	TenantSlug    string
	InvoiceNumber string
	Amount        int64
}

// Encode serializes the payload as a pipe-delimited string terminated by
// a CRC-16/CCITT checksum, e.g. "SKPAY|01|glow-studio|INV-000042|115000|A3F1".
// The checksum lets the scanning side reject corrupted codes.
func (p Payload) Encode() string {
	body := strings.Join([]string{"SKPAY", version, p.TenantSlug, p.InvoiceNumber, fmt.Sprintf("%d", p.Amount)}, "|")
	return fmt.Sprintf("%s|%04X", body, checksum(body))
}

// Decode parses an encoded payload and verifies its checksum
func Decode(s string) (Payload, error) {
	idx := strings.LastIndex(s, "|")
	if idx < 0 {
		return Payload{}, fmt.Errorf("qris: malformed payload")
	}
	body, crcHex := s[:idx], s[idx+1:]

	var crc uint16
	if _, err := fmt.Sscanf(crcHex, "%04X", &crc); err != nil {
		return Payload{}, fmt.Errorf("qris: malformed checksum: %w", err)
	}
	if crc != checksum(body) {
		return Payload{}, fmt.Errorf("qris: checksum mismatch")
	}

	parts := strings.Split(body, "|")
	if len(parts) != 5 || parts[0] != "SKPAY" {
		return Payload{}, fmt.Errorf("qris: malformed payload")
	}
	if parts[1] != version {
		return Payload{}, fmt.Errorf("qris: unsupported payload version %q", parts[1])
	}

	var amount int64
	if _, err := fmt.Sscanf(parts[4], "%d", &amount); err != nil {
		return Payload{}, fmt.Errorf("qris: malformed amount: %w", err)
	}

	return Payload{
		TenantSlug:    parts[2],
		InvoiceNumber: parts[3],
		Amount:        amount,
	}, nil
}

// checksum is CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF), the checksum
// QRIS payloads carry in their trailing tag.
func checksum(s string) uint16 {
	crc := uint16(0xFFFF)
	for i := 0; i < len(s); i++ {
		crc ^= uint16(s[i]) << 8
		for bit := 0; bit < 8; bit++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
