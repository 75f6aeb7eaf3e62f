package store

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// DecodePromptContent converts raw templated-prompt content into the tagged
// union. The wire form varies by backend:
//   - a single JSON object with "type"/"text" fields becomes one block;
//   - an array becomes an ordered block sequence (non-object elements carry
//     no usable fields and are skipped);
//   - a bare string is promoted to a single text block, matching runtimes
//     that wrap plain prompt strings in a text content part;
//   - anything else decodes to empty content.
//
// Unrecognized block kinds are preserved as-is; filtering them is the
// normalizer's decision, not the decoder's.
func DecodePromptContent(raw json.RawMessage) PromptContent {
	if len(raw) == 0 {
		return PromptContent{}
	}
	v := gjson.ParseBytes(raw)
	switch {
	case v.IsObject():
		b := decodeBlock(v)
		return PromptContent{Block: &b}
	case v.IsArray():
		var blocks []ContentBlock
		for _, item := range v.Array() {
			if item.IsObject() {
				blocks = append(blocks, decodeBlock(item))
			}
		}
		return PromptContent{Blocks: blocks}
	case v.Type == gjson.String:
		return PromptContent{Block: &ContentBlock{Kind: ContentKindText, Text: v.String()}}
	}
	return PromptContent{}
}

func decodeBlock(v gjson.Result) ContentBlock {
	return ContentBlock{Kind: v.Get("type").String(), Text: v.Get("text").String()}
}
