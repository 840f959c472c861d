package game

import (
	"strings"

	"github.com/google/uuid"
)

type idGen struct{}

func NewIdGen() idGen {
	return idGen{}
}

// Generate returns the first segment of a v4 uuid: short enough to share as
// a room code, random enough to not collide at this scale.
func (idGen) Generate() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
