package msgs

import (
	"github.com/golang/protobuf/proto"

	"github.com/robotalks/patchlink/pkg/classify"
	fx "github.com/robotalks/patchlink/pkg/framework"
)

// PatchOutcome is published for every classified patch.
type PatchOutcome struct {
	Host   string `protobuf:"bytes,1,opt,name=host,proto3" json:"host,omitempty"`
	Index  uint32 `protobuf:"varint,2,opt,name=index,proto3" json:"index,omitempty"`
	X      uint32 `protobuf:"varint,3,opt,name=x,proto3" json:"x,omitempty"`
	Y      uint32 `protobuf:"varint,4,opt,name=y,proto3" json:"y,omitempty"`
	Status uint32 `protobuf:"varint,5,opt,name=status,proto3" json:"status,omitempty"`
	Class  uint32 `protobuf:"varint,6,opt,name=class,proto3" json:"class,omitempty"`
	Label  string `protobuf:"bytes,7,opt,name=label,proto3" json:"label,omitempty"`
	Raw    string `protobuf:"bytes,8,opt,name=raw,proto3" json:"raw,omitempty"`
}

// NewPatchOutcome converts an outcome with its description.
func NewPatchOutcome(host string, o classify.Outcome, label string) *PatchOutcome {
	return &PatchOutcome{
		Host:   host,
		Index:  uint32(o.Index),
		X:      uint32(o.X),
		Y:      uint32(o.Y),
		Status: uint32(o.Status),
		Class:  uint32(o.Class),
		Label:  label,
		Raw:    o.Raw,
	}
}

// Outcome converts back to classify.Outcome.
func (m *PatchOutcome) Outcome() classify.Outcome {
	return classify.Outcome{
		Index:  int(m.Index),
		X:      int(m.X),
		Y:      int(m.Y),
		Status: classify.Status(m.Status),
		Class:  int(m.Class),
		Raw:    m.Raw,
	}
}

// NewMessage implements Message.
func (m *PatchOutcome) NewMessage() fx.Message { return &PatchOutcome{} }

// TypeID implements SerializableMessage.
func (m *PatchOutcome) TypeID() uint32 { return PatchOutcomeTypeID }

// Serializable implements SerializableMessage.
func (m *PatchOutcome) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *PatchOutcome) ProtoMessage() {}

// Reset implements proto.Message.
func (m *PatchOutcome) Reset() { *m = PatchOutcome{} }

// String implements proto.Message.
func (m *PatchOutcome) String() string { return proto.CompactTextString(m) }

// RunSummary is published when a run ends.
type RunSummary struct {
	Host       string `protobuf:"bytes,1,opt,name=host,proto3" json:"host,omitempty"`
	Image      string `protobuf:"bytes,2,opt,name=image,proto3" json:"image,omitempty"`
	Total      uint32 `protobuf:"varint,3,opt,name=total,proto3" json:"total,omitempty"`
	Completed  uint32 `protobuf:"varint,4,opt,name=completed,proto3" json:"completed,omitempty"`
	Success    uint32 `protobuf:"varint,5,opt,name=success,proto3" json:"success,omitempty"`
	OutOfRange uint32 `protobuf:"varint,6,opt,name=out_of_range,proto3" json:"out_of_range,omitempty"`
	Absent     uint32 `protobuf:"varint,7,opt,name=absent,proto3" json:"absent,omitempty"`
	Malformed  uint32 `protobuf:"varint,8,opt,name=malformed,proto3" json:"malformed,omitempty"`
	Error      string `protobuf:"bytes,9,opt,name=error,proto3" json:"error,omitempty"`
}

// NewMessage implements Message.
func (m *RunSummary) NewMessage() fx.Message { return &RunSummary{} }

// TypeID implements SerializableMessage.
func (m *RunSummary) TypeID() uint32 { return RunSummaryTypeID }

// Serializable implements SerializableMessage.
func (m *RunSummary) Serializable() proto.Message { return m }

// ProtoMessage implements proto.Message.
func (m *RunSummary) ProtoMessage() {}

// Reset implements proto.Message.
func (m *RunSummary) Reset() { *m = RunSummary{} }

// String implements proto.Message.
func (m *RunSummary) String() string { return proto.CompactTextString(m) }

// GroupPatch is the type ID group of classification events.
const GroupPatch uint32 = 0x00100000

// TypeIDs
const (
	PatchOutcomeTypeID uint32 = GroupPatch | TypeIDKindEvent | 0x0000
	RunSummaryTypeID   uint32 = GroupPatch | TypeIDKindEvent | 0x0001
)
