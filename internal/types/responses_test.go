package types

import "testing"

func TestDecodeList_BareArray(t *testing.T) {
	t.Parallel()
	ws, err := DecodeList([]byte(`[{"public_id":"a","latitude":1,"longitude":2}]`))
	if err != nil || len(ws) != 1 || ws[0].PublicID != "a" {
		t.Fatalf("got %+v err=%v", ws, err)
	}
}

func TestDecodeList_Envelope(t *testing.T) {
	t.Parallel()
	body := `{"data":[{"public_id":"a","latitude":1,"longitude":2}],"page":1,"per_page":50,"total":1}`
	ws, err := DecodeList([]byte(body))
	if err != nil || len(ws) != 1 || ws[0].PublicID != "a" {
		t.Fatalf("got %+v err=%v", ws, err)
	}
}

func TestDecodeList_EmptyAndInvalid(t *testing.T) {
	t.Parallel()
	ws, err := DecodeList(nil)
	if err != nil || ws != nil {
		t.Fatalf("empty body: got %+v err=%v", ws, err)
	}
	if _, err := DecodeList([]byte(`{bad json`)); err == nil {
		t.Fatal("expected decode error")
	}
}
