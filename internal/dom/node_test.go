package dom

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *Element {
	container := New("div", "tea", "app-tcmpp-table__box")
	table := New("table")
	container.Append(table)

	thead := New("thead")
	headRow := New("tr")
	for _, label := range []string{"游戏", "AppID", "状态", "操作"} {
		th := New("th")
		th.Text = label
		headRow.Append(th)
	}
	thead.Append(headRow)
	table.Append(thead)

	tbody := New("tbody")
	row := New("tr")
	nameCell := New("td")
	img := New("img")
	img.SetAttr("src", "https://cdn.example.com/foo.png")
	span := New("span")
	span.Text = " Foo "
	nameCell.Append(img)
	nameCell.Append(span)
	row.Append(nameCell)

	idCell := New("td")
	idSpan := New("span")
	idSpan.Text = "app1"
	idCell.Append(idSpan)
	row.Append(idCell)

	statusCell := New("td")
	statusCell.Text = "已上线"
	row.Append(statusCell)

	actionCell := New("td")
	actionCell.Append(New("div"))
	row.Append(actionCell)

	tbody.Append(row)
	table.Append(tbody)
	return container
}

func TestTableView(t *testing.T) {
	table := NewTable(sampleTable())

	assert.Equal(t, []string{"游戏", "AppID", "状态", "操作"}, table.Headers())

	rows := table.Rows()
	require.Len(t, rows, 1)

	cells := table.Cells(rows[0])
	require.Len(t, cells, 4)
	assert.Equal(t, "https://cdn.example.com/foo.png", cells[0].FindTag("img").Attr("src"))
	assert.Equal(t, "Foo", cells[0].FindTag("span").TextContent())
	assert.Equal(t, "app1", cells[1].TextContent())
}

func TestTableWithoutBody(t *testing.T) {
	container := New("div", "app-tcmpp-table__box")
	table := NewTable(container)
	assert.Nil(t, table.Headers())
	assert.Nil(t, table.Rows())
}

func TestFindAndClasses(t *testing.T) {
	container := sampleTable()
	assert.True(t, container.HasClass("app-tcmpp-table__box"))
	assert.Nil(t, container.FindClass("game-superapp-btn"))

	btn := New("button", "game-superapp-btn")
	container.FindTag("td").Prepend(btn)
	assert.Same(t, btn, container.FindClass("game-superapp-btn"))
}

func TestElementJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(sampleTable())
	require.NoError(t, err)

	var decoded Element
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "app1", NewTable(&decoded).Cells(NewTable(&decoded).Rows()[0])[1].TextContent())
}

func TestHub(t *testing.T) {
	var hub Hub
	target := New("tbody")

	got := 0
	cancel := hub.Subscribe(func(m Mutation) {
		got++
		assert.Same(t, target, m.Target)
	})
	hub.Notify(target)
	assert.Equal(t, 1, got)

	cancel()
	hub.Notify(target)
	assert.Equal(t, 1, got)
}
