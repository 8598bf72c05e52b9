package emulator

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/ezrec/asmsim/cpu"
	"github.com/ezrec/asmsim/report"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Nil(emu.Program)
	assert.Equal(cpu.ITERATION_LIMIT, emu.Limit)

	_, err := emu.Tick()
	assert.ErrorIs(err, ErrNotLoaded)
	_, err = emu.Execute(nil)
	assert.ErrorIs(err, ErrNotLoaded)
}

func TestEmulatorScenarios(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		source   string
		inputs   map[string]string
		ok       bool
		result   string
		category report.Category
		lineno   int
	}){
		{"add $8 %rax", nil, true, "8", report.CATEGORY_NONE, -1},
		{"add $10 %rax\ndiv $0", nil, false, FAILURE, report.CATEGORY_RUNTIME, 1},
		{"inc %r8\ncmp $1 %r8\nsete %rax", nil, true, "1", report.CATEGORY_NONE, -1},
		{".loop:\ninc %rax\ncmp $5 %rax\njne .loop", nil, true, "5", report.CATEGORY_NONE, -1},
		{"mov %rdi %rax", map[string]string{"rdi": "17"}, true, "17", report.CATEGORY_NONE, -1},
		{".dup:\n.dup:\ninc %rax", nil, false, FAILURE, report.CATEGORY_SYNTAX, 1},
		{"mov %rdi %rax", map[string]string{"rdi": "abc"}, false, FAILURE, report.CATEGORY_INPUT, -1},
	}

	for _, entry := range table {
		queue := &report.Queue{}
		emu := NewEmulator()
		emu.Reporter = queue

		ok, result := emu.Result(entry.source, entry.inputs)
		assert.Equal(entry.ok, ok, entry.source)
		assert.Equal(entry.result, result, entry.source)

		msg, reported := queue.Last()
		if entry.ok {
			assert.False(reported, entry.source)
			continue
		}
		if assert.True(reported, entry.source) {
			assert.Equal(entry.category, msg.Category, entry.source)
			assert.Equal(entry.lineno, msg.LineNo, entry.source)
			assert.NotEmpty(msg.Text, entry.source)
		}
		assert.Len(queue.Messages, 1, entry.source)
	}
}

func TestEmulatorResults(t *testing.T) {
	assert := assert.New(t)

	table := map[string](struct {
		source string
		result string
	}){
		"add immediate":   {"add $8 %rax", "8"},
		"sub register":    {"add $8 %rsi\n sub %rsi %rax", "-8"},
		"mul register":    {"add $1 %rax\n add $8 %rsi\n mul %rsi %rax", "8"},
		"div immediate":   {"add $10 %rax\n div $2", "5"},
		"div integer":     {"add $11 %rax\n div $2", "5"},
		"sar":             {"not %rax\n sar $1 %rax", "-1"},
		"shr":             {"not %rax\n shr $1 %rax", "2147483647"},
		"push-pop":        {"push $30\n pop %rax", "30"},
		"setg greater":    {"inc %r8\n cmp $0 %r8\n setg %rax", "1"},
		"setle equal":     {"inc %r8\n cmp $1 %r8\n setle %rax", "1"},
		"jmp":             {"jmp $2\n add $100 %rax\n add $5 %rax", "5"},
		"je":              {"inc %r8\n cmp $1 %r8\n je $4\n add $10 %rax\n inc %r8\n cmp $1 %r8\n je $8\n add $1 %rax\n add $200 %rax", "201"},
		"jne":             {"inc %r8\n cmp $1 %r8\n jne $4\n add $10 %rax\n inc %r8\n cmp $1 %r8\n jne $8\n add $1 %rax\n add $200 %rax", "210"},
		"jg":              {"inc %r8\n cmp $0 %r8\n jg $4\n add $100 %rax\n cmp $1 %r8\n jg $7\n add $10 %rax\n cmp $2 %r8\n jg $10\n add $1 %rax\n add $3000 %rax", "3011"},
		"jg OF":           {"add $1 %r10\n shl $31 %r10\n cmp $1 %r10\n jg $5\n add $1 %rax\n add $10 %rax", "11"},
		"jl":              {"inc %r8\n cmp $0 %r8\n jl $4\n add $100 %rax\n cmp $1 %r8\n jl $7\n add $10 %rax\n cmp $2 %r8\n jl $10\n add $1 %rax\n add $3000 %rax", "3110"},
		"jl OF":           {"add $1 %r10\n shl $31 %r10\n cmp $1 %r10\n jl $5\n add $1 %rax\n add $10 %rax", "10"},
		"jle":             {"inc %r8\n cmp $0 %r8\n jle $4\n add $100 %rax\n cmp $1 %r8\n jle $7\n add $10 %rax\n cmp $2 %r8\n jle $10\n add $1 %rax\n add $3000 %rax", "3100"},
		"comment":         {"#this is a comment", "0"},
		"commented":       {"#add $15 %rax\n add $7 %rax", "7"},
		"forward label":   {"jmp .skip\n add $100 %rax\n .skip:\n add $1 %rax", "1"},
		"jump alias":      {"cmp $0 %rax\n jz .done\n add $5 %rax\n .done:", "0"},
		"cmov":            {"mov $3 %rbx\n cmp $0 %rax\n cmove %rbx %rax", "3"},
		"jump to self":    {"inc %rax\n cmp $3 %rax\n jl $0", "3"},
		"jump label line": {".top:\n inc %rax\n cmp $2 %rax\n jne .top\n mov %rax %rbx", "2"},
	}

	for name, entry := range table {
		ok, result := NewEmulator().Result(entry.source, nil)
		assert.True(ok, name)
		assert.Equal(entry.result, result, name)
	}
}

func TestEmulatorErrors(t *testing.T) {
	assert := assert.New(t)

	table := map[string](struct {
		source   string
		inputs   map[string]string
		category report.Category
	}){
		"bad instruction":     {"dad $8 %rax", nil, report.CATEGORY_SYNTAX},
		"no operands":         {"add", nil, report.CATEGORY_SYNTAX},
		"not enough operands": {"add $1", nil, report.CATEGORY_SYNTAX},
		"too many operands":   {"add $1 %rax %rax", nil, report.CATEGORY_SYNTAX},
		"div two operands":    {"div $2 %rax", nil, report.CATEGORY_SYNTAX},
		"invalid immediate":   {"add $one %rax", nil, report.CATEGORY_SYNTAX},
		"float immediate":     {"add $0.1 %rax", nil, report.CATEGORY_SYNTAX},
		"invalid register":    {"add $1 %foo", nil, report.CATEGORY_SYNTAX},
		"bad label":           {".no_colon\ninc %rax", nil, report.CATEGORY_SYNTAX},
		"unknown label":       {"inc %rax\n cmp $5 %rax\n jne .test", nil, report.CATEGORY_SYNTAX},
		"invalid input":       {"", map[string]string{"rdi": "abc"}, report.CATEGORY_INPUT},
		"float input":         {"", map[string]string{"rdi": "0.1"}, report.CATEGORY_INPUT},
		"unknown input":       {"", map[string]string{"rzz": "1"}, report.CATEGORY_INPUT},
		"div by 0":            {"div $0", nil, report.CATEGORY_RUNTIME},
		"pop empty":           {"pop %rax", nil, report.CATEGORY_RUNTIME},
		"negative address":    {"mov $-1 %rbx\n mov (%rbx) %rax", nil, report.CATEGORY_RUNTIME},
		"jump negative":       {"jmp $-1", nil, report.CATEGORY_RUNTIME},
		"jump past end":       {"jmp $1", nil, report.CATEGORY_RUNTIME},
		"runaway":             {".top:\n jmp .top", nil, report.CATEGORY_RUNTIME},
	}

	for name, entry := range table {
		queue := &report.Queue{}
		emu := NewEmulator()
		emu.Reporter = queue

		ok, result := emu.Result(entry.source, entry.inputs)
		assert.False(ok, name)
		assert.Equal(FAILURE, result, name)

		msg, reported := queue.Next()
		if assert.True(reported, name) {
			assert.Equal(entry.category, msg.Category, name)
		}
	}
}

func TestEmulatorRuntimeLine(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	_, err := emu.Run("inc %rax\n\njmp $7", nil)

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(2, runtime.LineNo)
		assert.Equal(ErrJumpInvalid(7), runtime.Err)
	}

	// Effects before the failure remain.
	assert.Equal(int32(1), emu.Cpu.Register[cpu.RAX])
}

func TestEmulatorIterationLimit(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Limit = 10

	_, err := emu.Run(".top:\ninc %rax\njmp .top", nil)
	assert.ErrorIs(err, ErrIterationLimit(10))
	assert.Equal(11, emu.Cpu.Ticks)

	// The limit is checked before each line.
	result, err := emu.Run("inc %rax\ninc %rax\ninc %rax\ninc %rax\ninc %rax\ninc %rax\ninc %rax\ninc %rax\ninc %rax\ninc %rax\ninc %rax", nil)
	assert.NoError(err)
	assert.Equal(int32(11), result)
}

func TestEmulatorJumpToSelf(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Limit = 10

	// A taken jump to its own line loops in place.
	_, err := emu.Run("cmp $0 %rax\nje $1\ninc %rax", nil)
	assert.ErrorIs(err, ErrIterationLimit(10))
	var rt *ErrRuntime
	if assert.ErrorAs(err, &rt) {
		assert.Equal(1, rt.LineNo)
	}
	assert.Equal(int32(0), emu.Cpu.Register[cpu.RAX])

	// Not taken, it falls through.
	result, err := emu.Run("cmp $1 %rax\nje $1\ninc %rax", nil)
	assert.NoError(err)
	assert.Equal(int32(1), result)
}

func TestEmulatorTick(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	assert.NoError(emu.Load("inc %rax\njmp .end\ninc %rax\n.end:"))
	assert.NoError(emu.Reset(nil))

	var lines []int
	for done := false; !done; {
		lines = append(lines, emu.LineNo())
		var err error
		done, err = emu.Tick()
		if !assert.NoError(err) {
			return
		}
	}

	assert.Equal([]int{0, 1, 3}, lines)
	assert.Equal(3, emu.Cpu.Ticks)

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
}

func TestEmulatorLoadDiscards(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	assert.NoError(emu.Load("inc %rax"))
	assert.Error(emu.Load("bogus"))
	assert.Nil(emu.Program)
}

func TestEmulatorInputs(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		source string
		inputs map[string]string
		result string
	}){
		{"mov %rdi %rax", map[string]string{"rdi": "17"}, "17"},
		{"inc %rax", map[string]string{"rdi": "9"}, "1"},
		{"mov %r8 %rax", map[string]string{"%r8": "17"}, "17"},
		{"mov %rdi %rax", map[string]string{"rdi": "-1"}, "-1"},
		{"mov %rdi %rax", map[string]string{"rdi": "0x11"}, "17"},
		{
			"or %rdi %rax\n or %rsi %rax\n or %rdx %rax\n or %rcx %rax\n or %r8 %rax\n or %r9 %rax",
			map[string]string{"rdi": "1", "rsi": "2", "rdx": "4", "rcx": "8", "r8": "16", "r9": "32"},
			"63",
		},
	}

	for _, entry := range table {
		ok, result := Run(entry.source, entry.inputs)
		assert.True(ok, entry.source)
		assert.Equal(entry.result, result, entry.source)
	}
}

func TestEmulatorIdempotent(t *testing.T) {
	assert := assert.New(t)

	source := "push %rdi\nmov $5 16\nadd 16 %rax\npop %rbx\nadd %rbx %rax\ncmp $0 %rax"
	inputs := map[string]string{"rdi": "7"}

	emu := NewEmulator()
	first, err := emu.Run(source, inputs)
	assert.NoError(err)
	snap := emu.Cpu.Snapshot()

	second, err := emu.Run(source, inputs)
	assert.NoError(err)
	assert.Equal(first, second)
	assert.Equal(int32(12), second)

	if diff := cmp.Diff(snap, emu.Cpu.Snapshot()); diff != "" {
		t.Errorf("state leaked between runs (-first +second):\n%s", diff)
	}
}

func TestEmulatorDivRemainder(t *testing.T) {
	assert := assert.New(t)

	for _, a := range []int{17, -17, 5, -5, 0, 2147483647, -2147483647} {
		for _, d := range []int{1, 2, 3, -3, 7, -7, 100} {
			emu := NewEmulator()
			inputs := map[string]string{"rax": fmt.Sprint(a), "rbx": fmt.Sprint(d)}
			quotient, err := emu.Run("div %rbx", inputs)
			if !assert.NoError(err) {
				continue
			}
			remainder := int(emu.Cpu.Register[cpu.RDX])
			assert.Equal(a, int(quotient)*d+remainder, "%d / %d", a, d)
			if remainder != 0 {
				assert.Equal(a < 0, remainder < 0, "%d %% %d", a, d)
			}
		}
	}
}

func TestEmulatorMemoryAliasing(t *testing.T) {
	assert := assert.New(t)

	source := strings.Join([]string{
		"mov $4 %rbx",
		"mov $3 %rcx",
		"mov $99 8(%rbx,%rcx,4)",
		"mov 24 %rax",
		"add (,%rcx,8) %rax",
		"mov $1 (%rbx,%rcx)",
		"add 7 %rax",
	}, "\n")

	ok, result := Run(source, nil)
	assert.True(ok)
	assert.Equal("199", result)
}

func TestEmulatorConcurrent(t *testing.T) {
	assert := assert.New(t)

	source := ".loop:\ninc %rax\ncmp %rdi %rax\njl .loop"

	var wg sync.WaitGroup
	results := make([]string, 32)
	for n := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			emu := NewEmulator()
			emu.Reporter = report.Discard{}
			_, results[n] = emu.Result(source, map[string]string{"rdi": fmt.Sprint(n + 1)})
		}()
	}
	wg.Wait()

	for n, result := range results {
		assert.Equal(fmt.Sprint(n+1), result)
	}
}
