package harvest

import "testing"

func TestJSONObjectWriter_FieldOrder(t *testing.T) {
	var w jsonObjectWriter
	w.Append("type", "SetPrice")
	w.Append("amount", "34.56")
	w.Append("count", 2)

	got, err := w.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	want := `{"type":"SetPrice","amount":"34.56","count":2}`
	if string(got) != want {
		t.Errorf("MarshalJSON() = %s, want %s", got, want)
	}
}

func TestJSONObjectWriter_Optional(t *testing.T) {
	var w jsonObjectWriter
	w.Append("path", "harvest.csv")
	w.Optional("account", "")
	w.Optional("note", "kept")

	got, err := w.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	want := `{"path":"harvest.csv","note":"kept"}`
	if string(got) != want {
		t.Errorf("MarshalJSON() = %s, want %s", got, want)
	}
}

func TestJSONObjectWriter_Embed(t *testing.T) {
	var w jsonObjectWriter
	w.Append("account", "broker")
	w.EmbedFrom(NewInvestment("XYZ"))
	w.Append("amount", "10")

	got, err := w.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	want := `{"account":"broker","identifier":"XYZ","type":"investment","amount":"10"}`
	if string(got) != want {
		t.Errorf("MarshalJSON() = %s, want %s", got, want)
	}
}

func TestJSONObjectWriter_Empty(t *testing.T) {
	var w jsonObjectWriter
	got, err := w.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(got) != "{}" {
		t.Errorf("MarshalJSON() = %s, want {}", got)
	}
}
