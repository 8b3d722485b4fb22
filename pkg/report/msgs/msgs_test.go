package msgs

import (
	"testing"

	"github.com/golang/protobuf/proto"
	"github.com/stretchr/testify/require"

	"github.com/robotalks/patchlink/pkg/classify"
)

func TestTypedEnvelope(t *testing.T) {
	o := classify.Outcome{Index: 3, X: 96, Y: 0, Status: classify.OutOfRange, Class: 255}
	data, err := Encode(NewPatchOutcome("host0", o, "out of range class 255"))
	require.NoError(t, err)

	typed, err := DecodeTyped(data)
	require.NoError(t, err)
	require.Equal(t, PatchOutcomeTypeID, typed.TypeId)
	require.True(t, typed.IsEvent())

	msg, err := typed.Decode()
	require.NoError(t, err)
	decoded, ok := msg.(*PatchOutcome)
	require.True(t, ok)
	require.Equal(t, "host0", decoded.Host)
	require.Equal(t, o, decoded.Outcome())
}

func TestUnknownType(t *testing.T) {
	_, err := Typed{TypeId: GroupPatch | 0x7777}.Decode()
	require.IsType(t, &ErrUnknownType{}, err)

	_, err = TypedFrom(nil)
	require.Equal(t, ErrNotSerializable, err)
}

func TestSummaryWireFields(t *testing.T) {
	data, err := proto.Marshal(&RunSummary{Total: 5, Completed: 2, Error: "unplugged"})
	require.NoError(t, err)
	var summary RunSummary
	require.NoError(t, proto.Unmarshal(data, &summary))
	require.Equal(t, uint32(5), summary.Total)
	require.Equal(t, uint32(2), summary.Completed)
	require.Equal(t, "unplugged", summary.Error)
}
