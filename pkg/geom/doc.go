// Package geom provides integer grid geometry shared by the generator stages.
//
// All distances in regiongen are Euclidean distances truncated toward zero,
// so two cells compare equal whenever their distances share an integer part.
// [Dist] is the single source of that rule; every stage that ranks points by
// proximity must call it rather than comparing squared distances, otherwise
// tie-breaking drifts from the truncated behaviour.
package geom
