package edt

import "errors"

var errArgument = errors.New("edt: invalid argument")
