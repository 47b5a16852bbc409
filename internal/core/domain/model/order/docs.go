// Package order contains the order aggregate and its lifecycle rules.
//
// The package implements the marketplace order state machine: five statuses
// (pending, in_progress, completed, cancelled, disputed) with transitions
// conditioned on the role of the requesting party (client or freelancer).
// The rule set lives in a static transition table checked by set membership,
// so each cell is independently auditable.
//
// Alongside the aggregate the package provides:
//   - Update: the append-only audit entry recording status changes and
//     narrative notes
//   - StatusInfo: display attributes derived from a status
//   - Domain events raised on creation and on committed transitions
//
// All mutating behavior lives on the aggregate; persistence, transactions,
// and event delivery are handled by the application layer through ports.
package order
