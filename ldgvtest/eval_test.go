package ldgvtest

import (
	"testing"
)

func TestEval(t *testing.T) {
	tests := TestSuite{
		{"literals", TestSequence{
			{"()", "()"},
			{"5", "5"},
			{"-5", "-5"},
			{"'hello", "'hello"},
		}},
		{"arithmetic", TestSequence{
			{"(+ 1 2)", "3"},
			{"(- 5 9)", "-4"},
			{"(* 3 7)", "21"},
			{"(/ 7 2)", "3"},
			{"(/ -7 2)", "-3"},
			{"(neg 5)", "-5"},
			{"(succ 41)", "42"},
			{"(+ (* 2 3) 1)", "7"},
			{"(/ 1 0)", "division by zero: 1 / 0"},
			{"(+ 1 'a)", "arithmetic on label: 'a"},
		}},
		{"let", TestSequence{
			{"(let x 5 (+ x 1))", "6"},
			{"(let x 1 (let x 2 x))", "2"},
			{"(let x 1 (let y 2 (+ x y)))", "3"},
		}},
		{"pairs", TestSequence{
			{"(pair x 1 2)", "(1 . 2)"},
			{"(pair x 5 (+ x 1))", "(5 . 6)"},
			{"(fst (pair x 1 2))", "1"},
			{"(snd (pair x 1 2))", "2"},
			{"(lets a b (pair x 1 2) (+ a b))", "3"},
			{"(fst 5)", "fst on int: 5"},
			{"(lets a b 3 a)", "lets on int: 3"},
		}},
		{"functions", TestSequence{
			{"(lambda (x) x)", "<closure>"},
			{"((lambda (x) x) 1)", "1"},
			{"((lambda (x) (+ x 1)) 41)", "42"},
			{"((lambda (x y) (+ x y)) 1 2)", "3"},
			{"((lambda (x y) (+ x y)) 1)", "<closure>"},
			{"(3 4)", "application of int: 3"},
		}},
		{"case", TestSequence{
			{"(case 'a ('a 1) ('b 2))", "1"},
			{"(case 'b ('a 1) ('b 2))", "2"},
			{"(case 'c ('a 1) ('b 2))", "no matching case: 'c"},
			{"(case 5 ('a 1))", "case on int: 5"},
			{"(let l 'lt (case l ('lt 'less) ('gt 'greater)))", "'less"},
		}},
		{"symbols", TestSequence{
			{"undefined_name", "unbound symbol: undefined_name"},
		}},
		{"natrec", TestSequence{
			{"(natrec 3 1 (k r) (* k r))", "6"},
			{"(natrec 5 1 (k r) (* k r))", "120"},
			{"(natrec 0 1 (k r) (* k r))", "1"},
			{"(natrec 0 9 (k r) undefined_name)", "9"},
			{"(natrec 4 0 (k r) (+ k r))", "10"},
			{"(natrec (neg 1) 1 (k r) r)", "natrec on negative number: -1"},
			{"(natrec 'a 1 (k r) r)", "arithmetic on label: 'a"},
		}},
		{"globals", TestSequence{
			{"(val one () 1)", ""},
			{"one", "1"},
			{"(+ one one)", "2"},
			{"(val add ((x Int) (y Int)) Int (+ x y))", ""},
			{"(add 2 3)", "5"},
			{"(add 2)", "<closure>"},
			{"((add 2) 3)", "5"},
			{"(val tri ((n Int)) Int (natrec n 0 (k r) (+ k r)))", ""},
			{"(tri 4)", "10"},
		}},
	}
	RunTestSuite(t, tests)
}

func TestChannels(t *testing.T) {
	tests := TestSuite{
		{"duality", TestSequence{
			{"(lets a b (new) (let u ((send a) 1) (fst (recv b))))", "1"},
			{"(lets a b (new) (let u ((send b) 2) (fst (recv a))))", "2"},
		}},
		{"fifo order", TestSequence{
			{`(lets a b (new)
			    (let u ((send a) 1)
			      (let u ((send a) 2)
			        (lets x c (recv b)
			          (lets y c (recv c)
			            (pair z x y))))))`, "(1 . 2)"},
		}},
		{"send chains", TestSequence{
			{"(lets a b (new) (let u ((send ((send a) 1)) 2) (fst (recv b))))", "1"},
			{"(send 5)", "send on int: 5"},
			{"(recv ())", "recv on unit: ()"},
		}},
		{"fork", TestSequence{
			{"(fork undefined_name)", "()"},
			{"(lets a b (new) (let u (fork ((send a) 99)) (fst (recv b))))", "99"},
			{`(lets a b (new)
			    (let u (fork (lets v c (recv b) ((send c) (* v 2))))
			      (let s ((send a) 21)
			        (fst (recv a)))))`, "42"},
		}},
	}
	RunTestSuite(t, tests)
}
