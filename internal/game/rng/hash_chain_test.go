package rng

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildChain_LinksOrder(t *testing.T) {
	seed := []byte("fixed-test-seed")
	chain := BuildChain(seed, 5)

	assert.Equal(t, sha256.Sum256(seed), chain[4], "last link is SHA-256(seed)")
	for i := 3; i >= 0; i-- {
		assert.Equal(t, sha256.Sum256(chain[i+1][:]), chain[i])
	}
}

func TestBuildChain_Deterministic(t *testing.T) {
	seed := []byte("another-fixed-seed")
	a := BuildChain(seed, 10)
	b := BuildChain(seed, 10)
	assert.Equal(t, a, b)
}

func TestChainCommitment_HexEncoding(t *testing.T) {
	chain := BuildChain([]byte("seed"), 3)
	commitment := ChainCommitment(chain[0])
	assert.Len(t, commitment, 64)
}

func TestVerifyLink_AcceptsAdjacentLinks(t *testing.T) {
	chain := BuildChain([]byte("seed"), 4)
	for i := 0; i < 3; i++ {
		assert.True(t, VerifyLink(chain[i], chain[i+1]), "link %d should verify against %d", i+1, i)
	}
}

func TestVerifyLink_RejectsNonAdjacentLinks(t *testing.T) {
	chain := BuildChain([]byte("seed"), 4)
	assert.False(t, VerifyLink(chain[0], chain[2]))
}
