package types

import "testing"

func TestResponseHelpers(t *testing.T) {
	resp := &MessageResponse{
		Content: []ContentBlock{
			Text("Let me check. "),
			ToolUseBlock{Type: "tool_use", ID: "tu1", Name: "web_search"},
			Text("One moment."),
		},
		StopReason: StopReasonToolUse,
	}

	if got := resp.TextContent(); got != "Let me check. One moment." {
		t.Errorf("TextContent = %q", got)
	}
	uses := resp.ToolUses()
	if len(uses) != 1 || uses[0].ID != "tu1" {
		t.Errorf("ToolUses = %+v", uses)
	}
	if !resp.HasToolUse() {
		t.Error("HasToolUse = false")
	}

	empty := &MessageResponse{StopReason: StopReasonEndTurn}
	if empty.HasToolUse() || empty.TextContent() != "" {
		t.Error("empty response helpers misbehaved")
	}
}

func TestUsageAdd(t *testing.T) {
	total := Usage{InputTokens: 10, OutputTokens: 5}.Add(Usage{InputTokens: 7, OutputTokens: 3})
	if total.InputTokens != 17 || total.OutputTokens != 8 {
		t.Errorf("total = %+v", total)
	}
}
