// Package modelio reads and writes the flat tabular files exchanged with
// the estimation model: force-quoted CSV tables on the way in, and the
// model's result CSV on the way out.
package modelio
