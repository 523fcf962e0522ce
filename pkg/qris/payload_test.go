package qris

import (
	"strings"
	"testing"
)

func TestPayload_EncodeDecodeRoundTrip(t *testing.T) {
	p := Payload{TenantSlug: "glow-studio", InvoiceNumber: "INV-000042", Amount: 115000}

	encoded := p.Encode()
	if !strings.HasPrefix(encoded, "SKPAY|01|glow-studio|INV-000042|115000|") {
		t.Fatalf("unexpected payload layout: %s", encoded)
	}

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded != p {
		t.Errorf("round trip mismatch: %+v != %+v", decoded, p)
	}
}

func TestPayload_EncodeIsDeterministic(t *testing.T) {
	p := Payload{TenantSlug: "salon-ayu", InvoiceNumber: "INV-000007", Amount: 250000}
	if p.Encode() != p.Encode() {
		t.Fatal("identical payloads must encode identically")
	}
}

func TestDecode_RejectsTampering(t *testing.T) {
	encoded := Payload{TenantSlug: "salon-ayu", InvoiceNumber: "INV-000007", Amount: 250000}.Encode()

	// Flip the amount without recomputing the checksum.
	tampered := strings.Replace(encoded, "250000", "150000", 1)
	if _, err := Decode(tampered); err == nil {
		t.Fatal("expected checksum mismatch for tampered payload")
	}
}

func TestDecode_Malformed(t *testing.T) {
	for _, s := range []string{"", "SKPAY", "SKPAY|01|x|y|z|GGGG", "OTHER|01|a|b|5|0000"} {
		if _, err := Decode(s); err == nil {
			t.Errorf("Decode(%q) should fail", s)
		}
	}
}
