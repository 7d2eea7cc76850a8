package models

import "errors"

// ErrDataUnavailable — рынок не отдал данные (или отдал меньше, чем нужно).
// Не фатально: символ просто пропускает текущий цикл.
var ErrDataUnavailable = errors.New("market data unavailable")
