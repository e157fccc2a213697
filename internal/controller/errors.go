package controller

import "errors"

var errNothingToUndo = errors.New("nothing to undo")
