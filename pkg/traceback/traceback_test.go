package traceback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcode/scriptmonkey/pkg/model"
)

const pythonTrace = `Traceback (most recent call last):
  File "/home/dev/app/main.py", line 12, in <module>
    run()
  File "/home/dev/app/main.py", line 8, in run
    helpers.divide(1, 0)
  File "/home/dev/app/helpers.py", line 3, in divide
    return a / b
ZeroDivisionError: division by zero
`

const pythonChained = `Traceback (most recent call last):
  File "/tmp/a.py", line 2, in <module>
    d["missing"]
KeyError: 'missing'

During handling of the above exception, another exception occurred:

Traceback (most recent call last):
  File "/tmp/a.py", line 4, in <module>
    fallback()
  File "/tmp/b.py", line 9, in fallback
    raise RuntimeError("boom")
RuntimeError: boom
`

const pythonInterrupt = `Traceback (most recent call last):
  File "/tmp/loop.py", line 3, in <module>
    time.sleep(1)
KeyboardInterrupt
`

const pythonExceptionGroup = `  + Exception Group Traceback (most recent call last):
  |   File "/tmp/app.py", line 12, in <module>
  |     asyncio.run(main())
  |   File "/usr/lib/python3.12/asyncio/runners.py", line 194, in run
  |     return runner.run(main)
  |   File "/tmp/app.py", line 8, in main
  |     async with asyncio.TaskGroup() as tg:
  | ExceptionGroup: unhandled errors in a TaskGroup (1 sub-exception)
  +-+---------------- 1 ----------------
    | Traceback (most recent call last):
    |   File "/tmp/worker.py", line 3, in work
    |     return 1 / 0
    | ZeroDivisionError: division by zero
    +------------------------------------
`

const pythonGroupInterrupt = `  + Exception Group Traceback (most recent call last):
  |   File "/tmp/app.py", line 8, in main
  |     async with asyncio.TaskGroup() as tg:
  | BaseExceptionGroup: unhandled errors in a TaskGroup (1 sub-exception)
  +-+---------------- 1 ----------------
    | Traceback (most recent call last):
    |   File "/tmp/worker.py", line 5, in work
    |     await asyncio.sleep(10)
    | KeyboardInterrupt
    +------------------------------------
`

const goPanic = `panic: runtime error: integer divide by zero

goroutine 1 [running]:
main.divide(...)
	/home/dev/calc/main.go:6
main.main()
	/home/dev/calc/main.go:10 +0x1d
exit status 2
`

const goRecoveredStack = `goroutine 1 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:26 +0x5e
github.com/helmcode/scriptmonkey/pkg/crash.(*Interceptor).Recover(0xc000010018)
	/home/dev/scriptmonkey/pkg/crash/interceptor.go:91 +0x65
panic({0x4a1f40?, 0x5a3c10?})
	/usr/local/go/src/runtime/panic.go:785 +0x132
runtime.goPanicIndex(0x5, 0x3)
	/usr/local/go/src/runtime/panic.go:115 +0x6c
main.pick(...)
	/home/dev/tool/pick.go:4
main.main()
	/home/dev/tool/main.go:12 +0x4c
`

func TestParsePython(t *testing.T) {
	tb := ParsePython(pythonTrace)

	require.Len(t, tb.Frames, 3)
	assert.Equal(t, model.LanguagePython, tb.Language)
	assert.Equal(t, model.Frame{File: "/home/dev/app/main.py", Line: 12, Function: "<module>"}, tb.Frames[0])
	assert.Equal(t, model.Frame{File: "/home/dev/app/helpers.py", Line: 3, Function: "divide"}, tb.Frames[2])
	assert.False(t, tb.Interrupt)
	assert.Equal(t, pythonTrace, tb.Text)
}

func TestParsePython_Chained(t *testing.T) {
	tb := ParsePython(pythonChained)

	require.Len(t, tb.Frames, 3)
	assert.Equal(t, "/tmp/b.py", tb.Frames[2].File)
}

func TestParsePython_Interrupt(t *testing.T) {
	tb := ParsePython(pythonInterrupt)
	assert.True(t, tb.Interrupt)
	require.Len(t, tb.Frames, 1)
}

func TestParsePython_ExceptionGroup(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		frames    []string
		interrupt bool
	}{
		{
			name:   "task group failure",
			text:   pythonExceptionGroup,
			frames: []string{"/tmp/app.py", "/usr/lib/python3.12/asyncio/runners.py", "/tmp/app.py", "/tmp/worker.py"},
		},
		{
			name:      "interrupt inside a group",
			text:      pythonGroupInterrupt,
			frames:    []string{"/tmp/app.py", "/tmp/worker.py"},
			interrupt: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := Parse(tt.text)

			assert.Equal(t, model.LanguagePython, tb.Language)
			var files []string
			for _, f := range tb.Frames {
				files = append(files, f.File)
			}
			assert.Equal(t, tt.frames, files)
			assert.Equal(t, tt.interrupt, tb.Interrupt)
		})
	}

	tb := ParsePython(pythonExceptionGroup)
	require.Len(t, tb.Frames, 4)
	assert.Equal(t, model.Frame{File: "/tmp/worker.py", Line: 3, Function: "work"}, tb.Frames[3])
}

func TestParseGo_CrashOutput(t *testing.T) {
	tb := ParseGo(goPanic)

	require.Len(t, tb.Frames, 2)
	assert.Equal(t, model.LanguageGo, tb.Language)
	assert.Equal(t, model.Frame{File: "/home/dev/calc/main.go", Line: 10, Function: "main.main()"}, tb.Frames[0])
	assert.Equal(t, model.Frame{File: "/home/dev/calc/main.go", Line: 6, Function: "main.divide(...)"}, tb.Frames[1])
}

func TestParseGo_DropsPanicMachinery(t *testing.T) {
	tb := ParseGo(goRecoveredStack)

	require.Len(t, tb.Frames, 2)
	assert.Equal(t, "/home/dev/tool/main.go", tb.Frames[0].File)
	assert.Equal(t, "/home/dev/tool/pick.go", tb.Frames[1].File)
}

func TestParseGo_StopsAtFirstGoroutine(t *testing.T) {
	text := goPanic + "\ngoroutine 7 [chan receive]:\nmain.worker()\n\t/home/dev/calc/worker.go:3 +0x10\n"
	tb := ParseGo(text)
	require.Len(t, tb.Frames, 2)
}

func TestParseGo_NoGoroutine(t *testing.T) {
	tb := ParseGo("panic: boom\n")
	assert.Empty(t, tb.Frames)
}

func TestDetect(t *testing.T) {
	assert.Equal(t, model.LanguagePython, Detect(pythonTrace))
	assert.Equal(t, model.LanguageGo, Detect(goPanic))
	assert.Equal(t, model.LanguageGo, Detect(goRecoveredStack))
	assert.Equal(t, model.LanguageUnknown, Detect("segmentation fault (core dumped)"))
}

func TestParse_Unknown(t *testing.T) {
	tb := Parse("something went wrong")
	assert.Equal(t, model.LanguageUnknown, tb.Language)
	assert.Empty(t, tb.Frames)
	assert.Equal(t, "something went wrong", tb.Text)
}
