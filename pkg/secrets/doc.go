// Package secrets finds sensitive values in text configuration files.
//
// Files are scanned line by line. Each line is tried against an ordered rule
// table and the first rule that matches decides the finding, so a line yields
// at most one finding. Rules come in two shapes: assignment rules look at the
// name on the left of a shell or config assignment, token rules look for
// well-known credential formats anywhere in the line.
//
// Detection is heuristic. Secrets that match no rule are missed and harmless
// values that look sensitive are reported; both are expected.
//
// Findings never carry the secret itself, only its position and a masked
// preview. The vault package re-reads the position to recover the value.
package secrets
