// Package cleaning removes outlier rows and finds uninformative columns in gota data frames.
//
// IQR and ZScore split the rows of a data frame on one numeric column; LowInformationColumns
// reports near-constant and near-unique columns. All functions only read their input.
package cleaning
