package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var kenyanRules = PhoneRules{CountryCode: "254", TrunkPrefix: "0"}

func TestNormalizePhone_TrunkPrefix(t *testing.T) {
	assert.Equal(t, "254712345678", NormalizePhone("0712345678", kenyanRules))
}

func TestNormalizePhone_Whitespace(t *testing.T) {
	assert.Equal(t, "254712345678", NormalizePhone(" 0712 345 678 ", kenyanRules))
	assert.Equal(t, "254712345678", NormalizePhone("0712\t345\t678", kenyanRules))
}

func TestNormalizePhone_AlreadyInternational(t *testing.T) {
	assert.Equal(t, "254712345678", NormalizePhone("254712345678", kenyanRules))
}

func TestNormalizePhone_NoPrefix(t *testing.T) {
	assert.Equal(t, "254712345678", NormalizePhone("712345678", kenyanRules))
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	inputs := []string{"0712345678", "254712345678", "712345678", " 07 12 34 56 78 "}
	for _, in := range inputs {
		once := NormalizePhone(in, kenyanRules)
		assert.Equal(t, once, NormalizePhone(once, kenyanRules), "input %q", in)
	}
}

func TestNormalizePhone_TrunkPrefixStrippedExactlyOnce(t *testing.T) {
	// 0707... keeps the second 0: only the leading trunk prefix is replaced.
	assert.Equal(t, "254707123456", NormalizePhone("0707123456", kenyanRules))
}

func TestNormalizePhone_OtherRegion(t *testing.T) {
	ug := PhoneRules{CountryCode: "256", TrunkPrefix: "0"}
	assert.Equal(t, "256772123456", NormalizePhone("0772123456", ug))
	assert.Equal(t, "256772123456", NormalizePhone("256772123456", ug))
}

func TestNormalizePhone_Empty(t *testing.T) {
	assert.Equal(t, "254", NormalizePhone("", kenyanRules))
}
