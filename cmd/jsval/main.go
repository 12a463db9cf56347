// Command jsval is an interactive driver for jsval runtimes. Each input line
// is a YAML flow sequence naming a receiver, a method, and its arguments:
//
//	js> ["wörld wörld", replace, {re: "ö", flags: g}, o]
//	"world world"
//	js> [{global: String}, fromCodePoint, 0x1F600]
//	"😀"
//
// Mappings with a re key create regular expressions, and mappings with a
// global key read a property of the global object.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"strconv"
	"strings"

	"github.com/tliron/commonlog"
	"gopkg.in/yaml.v2"

	"github.com/zephyrtronium/jsval"
)

var log = commonlog.GetLogger("jsval.cmd")

func main() {
	var cfgPath, cpu, mem string
	flag.StringVar(&cfgPath, "config", "", "YAML or TOML configuration file")
	flag.StringVar(&cpu, "cpuprofile", "", "write a CPU profile to this file")
	flag.StringVar(&mem, "memprofile", "", "write a heap profile to this file on exit")
	flag.Parse()

	var cfg jsval.Config
	if cfgPath != "" {
		var err error
		if cfg, err = jsval.LoadConfig(cfgPath); err != nil {
			fail(err)
		}
	}
	jsval.ConfigureLogging(cfg)

	if cpu != "" {
		cf, err := os.Create(cpu)
		if err != nil {
			fail(err)
		}
		defer cf.Close()
		if err := pprof.StartCPUProfile(cf); err != nil {
			fail(err)
		}
		defer pprof.StopCPUProfile()
	}

	vm := jsval.NewTemplate(cfg).Clone()
	stdin := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("js> ")
		if !stdin.Scan() {
			break
		}
		line := strings.TrimSpace(stdin.Text())
		if line == "" {
			continue
		}
		r, err := eval(vm, line)
		if err != nil {
			fmt.Println("Exception:")
			fmt.Println("\t", show(vm, vm.Throwable(err)))
			continue
		}
		fmt.Println(show(vm, r))
	}
	fmt.Println()
	if err := stdin.Err(); err != nil {
		log.Errorf("reading input: %v", err)
	}

	if mem != "" {
		mf, err := os.Create(mem)
		if err != nil {
			fail(err)
		}
		defer mf.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(mf); err != nil {
			log.Errorf("writing heap profile: %v", err)
		}
	}
}

func fail(args ...interface{}) {
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

// eval parses and runs one line of input.
func eval(vm *jsval.VM, line string) (jsval.Value, error) {
	var call []interface{}
	if err := yaml.Unmarshal([]byte(line), &call); err != nil {
		return jsval.Undefined, jsval.NewError(jsval.SyntaxError, "%v", err)
	}
	if len(call) < 2 {
		return jsval.Undefined, jsval.NewError(jsval.SyntaxError, "need a receiver and a method")
	}
	method, ok := call[1].(string)
	if !ok {
		return jsval.Undefined, jsval.NewError(jsval.SyntaxError, "method name must be a string, not %v", call[1])
	}
	vals := make([]jsval.Value, 0, len(call)-1)
	for i, x := range call {
		if i == 1 {
			continue
		}
		v, err := toValue(vm, x)
		if err != nil {
			return jsval.Undefined, err
		}
		vals = append(vals, v)
	}
	log.Debugf("calling %s with %d arguments", method, len(vals)-1)
	return vm.Invoke(vals[0], method, vals[1:]...)
}

// toValue converts decoded YAML to a script value.
func toValue(vm *jsval.VM, x interface{}) (jsval.Value, error) {
	switch x := x.(type) {
	case nil:
		return jsval.Null, nil
	case bool:
		return jsval.BoolValue(x), nil
	case int:
		return jsval.IntValue(x), nil
	case uint64:
		return jsval.NumberValue(float64(x)), nil
	case float64:
		return jsval.NumberValue(x), nil
	case string:
		s, err := vm.NewString(x)
		return jsval.StringValue(s), err
	case []interface{}:
		vals := make([]jsval.Value, len(x))
		for i, e := range x {
			v, err := toValue(vm, e)
			if err != nil {
				return jsval.Undefined, err
			}
			vals[i] = v
		}
		return jsval.ObjectValue(vm.NewArray(vals...)), nil
	case map[interface{}]interface{}:
		if re, ok := x["re"]; ok {
			src, err := vm.NewString(fmt.Sprint(re))
			if err != nil {
				return jsval.Undefined, err
			}
			flags := jsval.Empty
			if f, ok := x["flags"]; ok {
				if flags, err = vm.NewString(fmt.Sprint(f)); err != nil {
					return jsval.Undefined, err
				}
			}
			o, err := vm.NewRegExp(src, flags)
			return jsval.ObjectValue(o), err
		}
		if g, ok := x["global"]; ok {
			return vm.Get(vm.Global, fmt.Sprint(g))
		}
		o := vm.NewObject()
		for k, e := range x {
			v, err := toValue(vm, e)
			if err != nil {
				return jsval.Undefined, err
			}
			if err := vm.Set(o, fmt.Sprint(k), v); err != nil {
				return jsval.Undefined, err
			}
		}
		return jsval.ObjectValue(o), nil
	}
	return jsval.Undefined, jsval.NewError(jsval.TypeError, "cannot convert %T", x)
}

// show formats a value for display. Arrays list their elements, and other
// objects use their toString method.
func show(vm *jsval.VM, v jsval.Value) string {
	switch {
	case v.IsString():
		s := v.Str()
		if s.Kind() == jsval.ByteString {
			return "b" + strconv.Quote(s.String())
		}
		return strconv.Quote(s.String())
	case !v.IsObject():
		return v.GoString()
	case v.Object().Tag() == jsval.ArrayTag:
		n, err := vm.Get(v.Object(), "length")
		if err != nil {
			return err.Error()
		}
		l, _ := vm.ToInteger(n)
		parts := make([]string, l)
		for i := range parts {
			e, err := vm.Get(v.Object(), strconv.Itoa(i))
			if err != nil {
				return err.Error()
			}
			parts[i] = show(vm, e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	r, err := vm.Invoke(v, "toString")
	if err != nil || !r.IsString() {
		return v.GoString()
	}
	return r.Str().String()
}
