package output

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/dop251/goja"
)

// domStub is the slice of the DOM the table script touches: class lists,
// attributes, listeners, row/cell collections, closest and simple selectors
// ("#id", ".cls", "tag", "tag.cls" and one descendant combinator).
const domStub = `
function ClassList() { this.names = {}; }
ClassList.prototype.add = function (name) { this.names[name] = true; };
ClassList.prototype.remove = function (name) { delete this.names[name]; };
ClassList.prototype.contains = function (name) { return this.names[name] === true; };
ClassList.prototype.toggle = function (name, force) {
    var on = force === undefined ? !this.contains(name) : !!force;
    if (on) { this.add(name); } else { this.remove(name); }
    return on;
};

function Element(tag, text) {
    this.tagName = tag;
    this.classList = new ClassList();
    this.attributes = {};
    this.children = [];
    this.parentNode = null;
    this.listeners = {};
    this.ownText = text || '';
    this.value = '';
}
Element.prototype.getAttribute = function (name) {
    return this.attributes.hasOwnProperty(name) ? this.attributes[name] : null;
};
Element.prototype.setAttribute = function (name, value) { this.attributes[name] = String(value); };
Element.prototype.addEventListener = function (type, fn) { this.listeners[type] = fn; };
Element.prototype.fire = function (type) { if (this.listeners[type]) { this.listeners[type](); } };
Element.prototype.appendChild = function (child) {
    if (child.parentNode) {
        var siblings = child.parentNode.children;
        siblings.splice(siblings.indexOf(child), 1);
    }
    child.parentNode = this;
    this.children.push(child);
    return child;
};
Element.prototype.byTag = function (tag) {
    return this.children.filter(function (child) { return child.tagName === tag; });
};
Object.defineProperty(Element.prototype, 'textContent', {
    get: function () {
        if (this.children.length === 0) { return this.ownText; }
        return this.children.map(function (child) { return child.textContent; }).join('');
    },
    set: function (text) { this.children = []; this.ownText = String(text); }
});
Object.defineProperty(Element.prototype, 'rows', { get: function () { return this.byTag('tr'); } });
Object.defineProperty(Element.prototype, 'cells', { get: function () { return this.children; } });
Object.defineProperty(Element.prototype, 'tBodies', { get: function () { return this.byTag('tbody'); } });
Object.defineProperty(Element.prototype, 'tHead', { get: function () { return this.byTag('thead')[0] || null; } });
Element.prototype.matches = function (selector) {
    if (selector.charAt(0) === '#') { return this.attributes.id === selector.slice(1); }
    var parts = selector.split('.');
    if (parts[0] !== '' && parts[0] !== this.tagName) { return false; }
    return parts.length < 2 || this.classList.contains(parts[1]);
};
Element.prototype.closest = function (selector) {
    for (var node = this; node; node = node.parentNode) {
        if (node.matches(selector)) { return node; }
    }
    return null;
};
Element.prototype.descendants = function () {
    var all = [];
    this.children.forEach(function (child) {
        all.push(child);
        all = all.concat(child.descendants());
    });
    return all;
};
Element.prototype.querySelectorAll = function (selector) {
    var parts = selector.split(' ');
    var last = parts.pop();
    var scope = parts.length ? parts[0] : null;
    return this.descendants().filter(function (node) {
        return node.matches(last) && (!scope || (node.parentNode && node.parentNode.closest(scope)));
    });
};
Element.prototype.querySelector = function (selector) {
    return this.querySelectorAll(selector)[0] || null;
};

function el(tag, attrs, text) {
    var node = new Element(tag, text);
    Object.keys(attrs || {}).forEach(function (name) {
        if (name === 'class') {
            attrs[name].split(' ').forEach(function (c) { node.classList.add(c); });
        } else {
            node.setAttribute(name, attrs[name]);
        }
    });
    return node;
}

var body = el('body');
var document = {
    getElementById: function (id) { return body.querySelector('#' + id); },
    querySelectorAll: function (selector) { return body.querySelectorAll(selector); }
};

var tabBar = body.appendChild(el('div', { 'class': 'tabs' }));
body.appendChild(el('input', { id: 'search' }));

// addSheet mirrors the markup produced by document.html.tmpl.
function addSheet(id, headers, rows, active) {
    tabBar.appendChild(el('button', { 'class': active ? 'tab active' : 'tab', 'data-sheet': 'sheet_' + id }, id));
    var panel = body.appendChild(el('div', { id: 'sheet_' + id, 'class': active ? 'sheet active' : 'sheet' }));
    var table = panel.appendChild(el('table', { id: 'tbl_' + id, 'class': 'data' }));
    var headRow = table.appendChild(el('thead')).appendChild(el('tr'));
    headers.forEach(function (header, i) { headRow.appendChild(el('th', { 'data-col': i }, header)); });
    var tbody = table.appendChild(el('tbody'));
    rows.forEach(function (cells) {
        var tr = tbody.appendChild(el('tr'));
        cells.forEach(function (cell) { tr.appendChild(el('td', {}, cell)); });
    });
    panel.appendChild(el('div', { 'class': 'row-count' }, 'Showing ' + rows.length + ' of ' + rows.length + ' rows'));
}

function search(query) {
    var box = document.getElementById('search');
    box.value = query;
    box.fire('input');
}

function clickHeader(id, col) {
    document.getElementById('tbl_' + id).querySelectorAll('th')[col].fire('click');
}

function clickTab(id) {
    document.querySelectorAll('.tab').filter(function (tab) {
        return tab.getAttribute('data-sheet') === 'sheet_' + id;
    })[0].fire('click');
}

function snapshot(id) {
    var table = document.getElementById('tbl_' + id);
    var panel = document.getElementById('sheet_' + id);
    return {
        rows: table.tBodies[0].rows.map(function (tr) {
            return tr.cells.map(function (td) { return td.textContent; });
        }),
        hidden: table.tBodies[0].rows.map(function (tr) { return tr.classList.contains('hidden'); }),
        highlighted: table.tBodies[0].rows.map(function (tr) {
            return tr.cells.map(function (td) { return td.classList.contains('highlight'); });
        }),
        counter: panel.querySelector('.row-count').textContent,
        active: panel.classList.contains('active')
    };
}
`

type tableState struct {
	Rows        [][]string `json:"rows"`
	Hidden      []bool     `json:"hidden"`
	Highlighted [][]bool   `json:"highlighted"`
	Counter     string     `json:"counter"`
	Active      bool       `json:"active"`
}

// newScriptRuntime loads the stub DOM, runs setup to build sheets, then runs
// the embedded table script against it.
func newScriptRuntime(t *testing.T, setup string) *goja.Runtime {
	t.Helper()

	script, err := assetFS.ReadFile("assets/table.js")
	if err != nil {
		t.Fatalf("read script asset: %v", err)
	}

	vm := goja.New()
	if _, err := vm.RunString(domStub); err != nil {
		t.Fatalf("run dom stub: %v", err)
	}
	if _, err := vm.RunString(setup); err != nil {
		t.Fatalf("run setup: %v", err)
	}
	if _, err := vm.RunString(string(script)); err != nil {
		t.Fatalf("run table script: %v", err)
	}
	return vm
}

func runJS(t *testing.T, vm *goja.Runtime, src string) {
	t.Helper()
	if _, err := vm.RunString(src); err != nil {
		t.Fatalf("run %q: %v", src, err)
	}
}

func readState(t *testing.T, vm *goja.Runtime, sheetID string) tableState {
	t.Helper()

	value, err := vm.RunString(`JSON.stringify(snapshot('` + sheetID + `'))`)
	if err != nil {
		t.Fatalf("snapshot %s: %v", sheetID, err)
	}
	var state tableState
	if err := json.Unmarshal([]byte(value.String()), &state); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	return state
}

func column(state tableState, col int) []string {
	values := make([]string, 0, len(state.Rows))
	for _, row := range state.Rows {
		values = append(values, row[col])
	}
	return values
}

func TestScript_SortsColumns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values string
		asc    []string
		desc   []string
	}{
		{
			name:   "numbers compare numerically",
			values: `["10", "2", "1"]`,
			asc:    []string{"1", "2", "10"},
			desc:   []string{"10", "2", "1"},
		},
		{
			name:   "unit suffix compares by leading number",
			values: `["10 kg", "2 kg", "1 kg"]`,
			asc:    []string{"1 kg", "2 kg", "10 kg"},
			desc:   []string{"10 kg", "2 kg", "1 kg"},
		},
		{
			name:   "percentages",
			values: `["10%", "2%", "1%"]`,
			asc:    []string{"1%", "2%", "10%"},
			desc:   []string{"10%", "2%", "1%"},
		},
		{
			name:   "text falls back to locale order",
			values: `["pear", "apple", "fig"]`,
			asc:    []string{"apple", "fig", "pear"},
			desc:   []string{"pear", "fig", "apple"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			vm := newScriptRuntime(t, `addSheet('Data', ['Value'], `+tt.values+`.map(function (v) { return [v]; }), true);`)

			runJS(t, vm, `clickHeader('Data', 0)`)
			if got := column(readState(t, vm, "Data"), 0); !reflect.DeepEqual(got, tt.asc) {
				t.Fatalf("first click: expected %v, got %v", tt.asc, got)
			}

			runJS(t, vm, `clickHeader('Data', 0)`)
			if got := column(readState(t, vm, "Data"), 0); !reflect.DeepEqual(got, tt.desc) {
				t.Fatalf("second click: expected %v, got %v", tt.desc, got)
			}
		})
	}
}

func TestScript_OtherColumnResetsToAscending(t *testing.T) {
	t.Parallel()

	vm := newScriptRuntime(t, `addSheet('Data', ['Name', 'Age'], [['Bo', '25'], ['Ann', '30'], ['Cy', '7']], true);`)

	runJS(t, vm, `clickHeader('Data', 1); clickHeader('Data', 1); clickHeader('Data', 0)`)
	want := []string{"Ann", "Bo", "Cy"}
	if got := column(readState(t, vm, "Data"), 0); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestScript_FilterHidesAndHighlights(t *testing.T) {
	t.Parallel()

	vm := newScriptRuntime(t, `
addSheet('People', ['Name', 'City'], [['Bob Smith', 'Oslo'], ['Alice', 'Bobbington']], true);
addSheet('Other', ['Name'], [['Carol'], ['bob']], false);
`)

	runJS(t, vm, `search('bob')`)

	people := readState(t, vm, "People")
	if !reflect.DeepEqual(people.Hidden, []bool{false, false}) {
		t.Fatalf("expected both rows visible (second matches via city), got %v", people.Hidden)
	}

	runJS(t, vm, `search('BOB S')`)
	people = readState(t, vm, "People")
	if !reflect.DeepEqual(people.Hidden, []bool{false, true}) {
		t.Fatalf("expected only the first row visible, got %v", people.Hidden)
	}
	if !reflect.DeepEqual(people.Highlighted, [][]bool{{true, false}, {false, false}}) {
		t.Fatalf("unexpected highlight: %v", people.Highlighted)
	}
	if people.Counter != "Showing 1 of 2 rows" {
		t.Fatalf("expected counter %q, got %q", "Showing 1 of 2 rows", people.Counter)
	}

	other := readState(t, vm, "Other")
	if !reflect.DeepEqual(other.Hidden, []bool{true, true}) || other.Counter != "Showing 0 of 2 rows" {
		t.Fatalf("expected every table to be filtered, got %+v", other)
	}

	runJS(t, vm, `search('')`)
	people = readState(t, vm, "People")
	if !reflect.DeepEqual(people.Hidden, []bool{false, false}) || people.Counter != "Showing 2 of 2 rows" {
		t.Fatalf("expected empty query to show all rows, got %+v", people)
	}
	if !reflect.DeepEqual(people.Highlighted, [][]bool{{false, false}, {false, false}}) {
		t.Fatalf("expected highlight cleared, got %v", people.Highlighted)
	}
}

func TestScript_FilterSingleMatch(t *testing.T) {
	t.Parallel()

	vm := newScriptRuntime(t, `addSheet('People', ['Name'], [['Bob Smith'], ['Alice']], true);`)

	runJS(t, vm, `search('bob')`)
	state := readState(t, vm, "People")
	if !reflect.DeepEqual(state.Hidden, []bool{false, true}) {
		t.Fatalf("expected only the first row visible, got %v", state.Hidden)
	}
	if !state.Highlighted[0][0] || state.Highlighted[1][0] {
		t.Fatalf("expected only the matching cell highlighted, got %v", state.Highlighted)
	}
	if state.Counter != "Showing 1 of 2 rows" {
		t.Fatalf("expected counter %q, got %q", "Showing 1 of 2 rows", state.Counter)
	}
}

func TestScript_SortKeepsHiddenRowsHidden(t *testing.T) {
	t.Parallel()

	vm := newScriptRuntime(t, `addSheet('Data', ['Name', 'Qty'], [['pear', '10'], ['apple', '2'], ['plum', '1']], true);`)

	runJS(t, vm, `search('plu'); clickHeader('Data', 1)`)

	state := readState(t, vm, "Data")
	if got, want := column(state, 1), []string{"1", "2", "10"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if want := []bool{false, true, true}; !reflect.DeepEqual(state.Hidden, want) {
		t.Fatalf("expected hidden flags to follow their rows %v, got %v", want, state.Hidden)
	}
	if state.Counter != "Showing 1 of 3 rows" {
		t.Fatalf("expected counter unchanged by sort, got %q", state.Counter)
	}
}

func TestScript_TabSwitchActivatesClickedSheet(t *testing.T) {
	t.Parallel()

	vm := newScriptRuntime(t, `
addSheet('First', ['A'], [['1']], true);
addSheet('Second', ['A'], [['2']], false);
addSheet('Third', ['A'], [['3']], false);
`)

	runJS(t, vm, `clickTab('Second')`)

	for id, want := range map[string]bool{"First": false, "Second": true, "Third": false} {
		if got := readState(t, vm, id).Active; got != want {
			t.Fatalf("sheet %s: expected active %v, got %v", id, want, got)
		}
	}

	value, err := vm.RunString(`document.querySelectorAll('.tab').filter(function (tab) { return tab.classList.contains('active'); }).map(function (tab) { return tab.getAttribute('data-sheet'); }).join(',')`)
	if err != nil {
		t.Fatalf("read active tabs: %v", err)
	}
	if value.String() != "sheet_Second" {
		t.Fatalf("expected exactly the clicked tab active, got %q", value.String())
	}
}
