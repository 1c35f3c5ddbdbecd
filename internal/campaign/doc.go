// Package campaign evaluates promotional campaigns against products.
//
// Everything here is pure: callers fetch the live campaigns and the product
// projection, and this package decides which campaigns apply, what the
// product costs after the first applicable one, and how the promotion is
// labelled. Pricing never fails; a campaign missing the number its type
// needs simply does not discount.
package campaign
